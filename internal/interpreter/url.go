package interpreter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/akshatworkmail12-bit/jarvis/internal/llm"
)

var (
	urlExtractPattern  = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	dupSchemePattern   = regexp.MustCompile(`https?://(https?://)+`)
	fencedBlockPattern = regexp.MustCompile("(?s)```.*?```")
)

// ConstructURL asks the LLM for the canonical URL of a site name. It always
// returns a usable URL: when the call fails or no URL pattern is found in
// the reply, it falls back to https://www.<input>.com.
func (i *Interpreter) ConstructURL(ctx context.Context, siteName string) string {
	prompt := fmt.Sprintf(`Given the website input: "%s"

Return ONLY a valid, complete URL with proper format.

Rules:
1. Return ONLY the URL, nothing else
2. Must start with https://
3. Use correct domain extension (.com, .org, .net, .io, etc.)
4. For popular sites, use the exact correct URL
5. No www duplication
6. Clean, single URL only

Examples:
Input: "youtube" -> Output: https://www.youtube.com
Input: "gmail" -> Output: https://mail.google.com
Input: "github" -> Output: https://github.com
Input: "reddit" -> Output: https://www.reddit.com

Now process: "%s"

Return ONLY the URL:`, siteName, siteName)

	raw, err := i.client.Chat(ctx, []llm.Message{llm.TextMessage("user", prompt)}, false)
	if err != nil {
		i.log.Warnw("url construction failed, using fallback", "site", siteName, "error", err)
		return fallbackURL(siteName)
	}

	url := strings.TrimSpace(fencedBlockPattern.ReplaceAllString(raw, ""))
	if match := urlExtractPattern.FindString(url); match != "" {
		url = match
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	url = dupSchemePattern.ReplaceAllString(url, "https://")

	if !urlExtractPattern.MatchString(url) {
		return fallbackURL(siteName)
	}

	i.log.Infow("constructed url", "site", siteName, "url", url)
	return url
}

func fallbackURL(siteName string) string {
	if strings.HasPrefix(siteName, "http://") || strings.HasPrefix(siteName, "https://") {
		return siteName
	}
	return fmt.Sprintf("https://www.%s.com", siteName)
}
