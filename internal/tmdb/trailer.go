package tmdb

import "context"

const youtubeEmbedBase = "https://www.youtube.com/embed/"

// FindTrailer returns the first YouTube trailer among videos.
func FindTrailer(videos []Video) (Video, bool) {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v, true
		}
	}
	return Video{}, false
}

// EmbedURL returns the iframe URL for a YouTube video.
func (v Video) EmbedURL() string {
	return youtubeEmbedBase + v.Key
}

// Trailer resolves the embeddable trailer URL for a title.
// Returns ErrNoTrailer when the title has videos but none is a YouTube trailer.
func (c *Client) Trailer(ctx context.Context, cat Category, id int64) (string, error) {
	videos, err := c.Videos(ctx, cat, id)
	if err != nil {
		return "", err
	}
	v, ok := FindTrailer(videos)
	if !ok {
		return "", ErrNoTrailer
	}
	return v.EmbedURL(), nil
}
