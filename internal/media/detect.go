package media

import "strings"

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Containers that may carry embedded cover art.
var coverArtExts = map[string]bool{
	".mp3":  true,
	".flac": true,
}

var listExts = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
}

// IsImageExt returns true if the extension is a decodable image format.
func IsImageExt(ext string) bool {
	return imageExts[strings.ToLower(ext)]
}

// IsCoverArtExt returns true if the extension is an audio container whose
// embedded picture can be shown as a slide.
func IsCoverArtExt(ext string) bool {
	return coverArtExts[strings.ToLower(ext)]
}

// IsSupportedExt returns true if a file with this extension can become a slide.
func IsSupportedExt(ext string) bool {
	return IsImageExt(ext) || IsCoverArtExt(ext)
}

// IsListExt returns true if the extension is a supported slide list format.
func IsListExt(ext string) bool {
	return listExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of supported slide formats.
func SupportedExtsList() string {
	return ".jpg, .jpeg, .png, .gif, .bmp, .tif, .tiff, .webp, .mp3 (cover art), .flac (cover art)"
}
