// Package pattern compiles path templates of the form
// "outputDir/%PatientName/%StudyDate-%SeriesNumber.dcm" and resolves them
// against per-file metadata records into filesystem-safe destination paths.
package pattern
