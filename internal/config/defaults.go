package config

// DefaultPattern is the path template applied when the target has no
// placeholders of its own.
const DefaultPattern = "%PatientName-%Modality%StudyID-%StudyDescription-%StudyDate/%SeriesNumber_%SeriesDescription-%InstanceNumber.dcm"

const (
	defaultSelftestURL  = "https://s3.amazonaws.com/ec2.isomics.com/dicomsort-testdata.zip"
	defaultSelftestSize = 65916934
)

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
		Sorting: Sorting{
			DefaultPattern: DefaultPattern,
		},
		Metadata: Metadata{
			Adapter:       "auto",
			DcmdumpBinary: "dcmdump",
		},
		Selftest: Selftest{
			DataURL:      defaultSelftestURL,
			ExpectedSize: defaultSelftestSize,
		},
	}
}
