package dto

// ExportLinkResponse is returned when an export is delivered as a one-time
// download link instead of inline bytes.
type ExportLinkResponse struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
}
