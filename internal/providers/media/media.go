// Package media implements the Media capability: YouTube playback and
// search, website opening and URL browsing.
package media

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/browser"
	"github.com/akshatworkmail12-bit/jarvis/internal/validation"
)

// URLBuilder resolves a site name into a full URL. The interpreter satisfies
// this.
type URLBuilder interface {
	ConstructURL(ctx context.Context, siteName string) string
}

// Service provides media operations.
type Service struct {
	urls URLBuilder
	log  *zap.SugaredLogger
}

// NewService creates the provider.
func NewService(urls URLBuilder, log *zap.SugaredLogger) *Service {
	return &Service{urls: urls, log: log}
}

// PlayYoutubeVideo resolves the first search hit for the query through
// yt-dlp and opens it directly. Any resolution failure is returned as an
// error so the caller can fall back to a plain search.
func (s *Service) PlayYoutubeVideo(ctx context.Context, query string) error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return apperrors.Application("yt-dlp not available", "play_youtube", query)
	}

	out, err := exec.CommandContext(ctx, "yt-dlp",
		"--quiet", "--no-warnings", "--get-id",
		"ytsearch1:"+query,
	).Output()
	if err != nil {
		return apperrors.Application("video resolution failed: "+err.Error(), "play_youtube", query)
	}

	videoID := strings.TrimSpace(string(out))
	if videoID == "" {
		return apperrors.Application("no video found", "play_youtube", query)
	}

	videoURL := "https://www.youtube.com/watch?v=" + videoID
	if err := browser.Open(videoURL); err != nil {
		return apperrors.Application("failed to open video: "+err.Error(), "play_youtube", query)
	}
	s.log.Infow("playing youtube video", "query", query, "url", videoURL)
	return nil
}

// SearchYoutube opens a YouTube search results page for the query.
func (s *Service) SearchYoutube(query string) error {
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	if err := browser.Open(searchURL); err != nil {
		return apperrors.Application("failed to open youtube search: "+err.Error(), "search_youtube", query)
	}
	s.log.Infow("opened youtube search", "query", query)
	return nil
}

// OpenWebsite opens a site by name, constructing its URL through the
// URLBuilder. On browser failure it retries once with the plain fallback
// URL before giving up. The opened URL is returned either way.
func (s *Service) OpenWebsite(ctx context.Context, siteName string) (string, error) {
	siteURL := s.urls.ConstructURL(ctx, siteName)
	if err := browser.Open(siteURL); err == nil {
		return siteURL, nil
	}

	fallback := siteName
	if !strings.HasPrefix(siteName, "http://") && !strings.HasPrefix(siteName, "https://") {
		fallback = "https://www." + siteName + ".com"
	}
	if err := browser.Open(fallback); err != nil {
		return "", apperrors.System("failed to open website: "+err.Error(), "open_website", siteName)
	}
	return fallback, nil
}

// BrowseURL validates then opens an explicit URL.
func (s *Service) BrowseURL(rawURL string) error {
	validated, err := validation.ValidateURL(rawURL)
	if err != nil {
		return err
	}
	if err := browser.Open(validated); err != nil {
		return apperrors.System("failed to browse url: "+err.Error(), "browse_url", rawURL)
	}
	return nil
}
