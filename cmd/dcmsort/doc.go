// Command dcmsort sorts DICOM files into a directory tree derived from
// their metadata.
package main
