package tmdb

const imageBaseURL = "https://image.tmdb.org/t/p/"

// Image sizes used by the browser.
const (
	SizeW500     = "w500"
	SizeOriginal = "original"
)

// ImageURL returns the full image URL for a TMDB file path.
// Size can be: w92, w154, w185, w342, w500, w780, original
func ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + size + path
}

// PosterURL returns the poster, falling back to the backdrop.
func (i Item) PosterURL(size string) string {
	if i.PosterPath != "" {
		return ImageURL(size, i.PosterPath)
	}
	return ImageURL(size, i.BackdropPath)
}
