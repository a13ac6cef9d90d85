// Package dicom extracts flat field-name to value records from DICOM file
// headers. The backend is selected once at startup: a native parser, or an
// external dcmdump process for installations that prefer the DCMTK
// toolchain.
package dicom
