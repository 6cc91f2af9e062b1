package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		OriginalURL string     `doc:"The URL to shorten"                                example:"https://example.com/very/long/path" json:"originalUrl"`
		ExpiryDate  *time.Time `doc:"Accepted for forward compatibility; not applied"   json:"expiryDate,omitempty"                  required:"false"`
	}
}

// ShortURLData carries the shortened address of a newly created mapping.
type ShortURLData struct {
	ShortURL string `doc:"The full short URL" example:"https://sho.rt/abc123" json:"shortUrl"`
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Body struct {
		Status          bool          `doc:"Always true for success"        json:"status"`
		CustomerMessage string        `doc:"Human-readable status message"  json:"customerMessage"`
		Code            string        `doc:"HTTP status code as a string"   json:"code"`
		Data            *ShortURLData `json:"data"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}
