package analyzer

import (
	"net/url"
	"strings"

	"bmorg/internal/model"
)

type rule struct {
	pattern  string
	category string
}

// domainRules map well-known sites to categories. Patterns containing a
// slash match against host+path, the rest against the host or any of its
// subdomains. Order matters: the first hit wins.
var domainRules = []rule{
	// Development & Tech
	{"github.com", "Development"},
	{"gitlab.com", "Development"},
	{"bitbucket.org", "Development"},
	{"stackoverflow.com", "Development"},
	{"medium.com", "Technology & Development"},
	{"dev.to", "Development"},
	{"hackerrank.com", "Development"},
	{"leetcode.com", "Development"},
	{"codepen.io", "Web Development"},
	{"npmjs.com", "Web Development"},
	{"pypi.org", "Python Development"},
	{"kaggle.com", "Data Science"},

	// Media
	{"youtube.com", "Videos"},
	{"youtu.be", "Videos"},
	{"vimeo.com", "Videos"},
	{"twitch.tv", "Streaming"},
	{"netflix.com", "Entertainment"},
	{"hulu.com", "Entertainment"},
	{"spotify.com", "Music"},
	{"soundcloud.com", "Music"},
	{"bandcamp.com", "Music"},
	{"deezer.com", "Music"},
	{"apple.com/music", "Music"},

	// Social
	{"linkedin.com", "Professional"},
	{"facebook.com", "Social Media"},
	{"twitter.com", "Social Media"},
	{"instagram.com", "Social Media"},
	{"pinterest.com", "Social Media"},
	{"reddit.com", "Social Media"},
	{"tumblr.com", "Social Media"},
	{"tiktok.com", "Social Media"},
	{"snapchat.com", "Social Media"},
	{"discord.com", "Communication"},
	{"slack.com", "Communication"},

	// Shopping
	{"amazon.com", "Shopping"},
	{"amazon.co.uk", "Shopping"},
	{"amazon.de", "Shopping"},
	{"ebay.com", "Shopping"},
	{"etsy.com", "Shopping"},
	{"aliexpress.com", "Shopping"},
	{"walmart.com", "Shopping"},
	{"target.com", "Shopping"},
	{"bestbuy.com", "Shopping"},

	// News & Information
	{"nytimes.com", "News"},
	{"washingtonpost.com", "News"},
	{"bbc.com", "News"},
	{"bbc.co.uk", "News"},
	{"cnn.com", "News"},
	{"theguardian.com", "News"},
	{"reuters.com", "News"},
	{"apnews.com", "News"},
	{"wikipedia.org", "Reference"},

	// Productivity
	{"notion.so", "Productivity"},
	{"trello.com", "Productivity"},
	{"asana.com", "Productivity"},
	{"evernote.com", "Productivity"},
	{"todoist.com", "Productivity"},
	{"google.com/docs", "Documents"},
	{"google.com/sheets", "Spreadsheets"},
	{"google.com/drive", "Cloud Storage"},
	{"dropbox.com", "Cloud Storage"},
	{"onedrive.live.com", "Cloud Storage"},
	{"docs.microsoft.com", "Documentation"},

	// Learning
	{"coursera.org", "Education"},
	{"udemy.com", "Education"},
	{"edx.org", "Education"},
	{"khanacademy.org", "Education"},
	{"udacity.com", "Education"},
	{"pluralsight.com", "Technology Education"},
	{"freecodecamp.org", "Web Development Education"},

	// Finance
	{"finance.yahoo.com", "Finance"},
	{"marketwatch.com", "Finance"},
	{"bloomberg.com", "Finance"},
	{"investopedia.com", "Finance Education"},
	{"paypal.com", "Payment"},
	{"chase.com", "Banking"},
	{"bankofamerica.com", "Banking"},
	{"wellsfargo.com", "Banking"},

	// Travel
	{"booking.com", "Travel"},
	{"airbnb.com", "Travel"},
	{"expedia.com", "Travel"},
	{"tripadvisor.com", "Travel"},
	{"maps.google.com", "Maps"},

	// Email & Communication
	{"gmail.com", "Email"},
	{"outlook.com", "Email"},
	{"yahoo.com/mail", "Email"},
	{"zoom.us", "Video Conferencing"},
	{"meet.google.com", "Video Conferencing"},
}

// titleRules match whole title tokens against common keywords.
var titleRules = []rule{
	{"tutorial", "Tutorials"},
	{"course", "Courses"},
	{"learn", "Learning"},
	{"guide", "Guides"},
	{"howto", "How-To"},
	{"documentation", "Documentation"},
	{"reference", "Reference"},
	{"cheatsheet", "Cheat Sheets"},
	{"recipe", "Recipes"},
	{"blog", "Blogs"},
	{"news", "News"},
	{"article", "Articles"},
	{"review", "Reviews"},
	{"shop", "Shopping"},
	{"store", "Shopping"},
	{"buy", "Shopping"},
	{"product", "Products"},
	{"tool", "Tools"},
	{"service", "Services"},
	{"api", "APIs"},
	{"download", "Downloads"},
	{"game", "Games"},
	{"video", "Videos"},
	{"music", "Music"},
	{"audio", "Audio"},
	{"podcast", "Podcasts"},
	{"book", "Books"},
	{"paper", "Research Papers"},
	{"research", "Research"},
	{"job", "Jobs"},
	{"career", "Careers"},
	{"portfolio", "Portfolios"},
	{"project", "Projects"},
	{"forum", "Forums"},
	{"community", "Communities"},
	{"dashboard", "Dashboards"},
	{"analytics", "Analytics"},
	{"report", "Reports"},
	{"login", "Logins"},
	{"account", "Accounts"},
	{"profile", "Profiles"},
}

// pathRules match URL path substrings.
var pathRules = []rule{
	{"/blog", "Blog"},
	{"/docs", "Documentation"},
	{"/documentation", "Documentation"},
	{"/learn", "Learning"},
	{"/courses", "Courses"},
	{"/news", "News"},
	{"/shop", "Shopping"},
	{"/store", "Shopping"},
	{"/product", "Product"},
	{"/forum", "Forum"},
	{"/community", "Community"},
	{"/support", "Support"},
	{"/help", "Help"},
	{"/faq", "FAQ"},
	{"/wiki", "Wiki"},
	{"/about", "About"},
	{"/contact", "Contact"},
}

// tldCategories are last-resort labels by top-level domain.
var tldCategories = map[string]string{
	"edu":   "Education",
	"gov":   "Government",
	"org":   "Non-profit",
	"io":    "Technology",
	"dev":   "Development",
	"tech":  "Technology",
	"ai":    "Artificial Intelligence",
	"shop":  "Shopping",
	"store": "Shopping",
	"blog":  "Blogs",
	"news":  "News",
}

// ruleCategory applies the fixed tables in priority order: known domains,
// then title keywords, then URL path segments, then the bookmark's own
// top-level folder, then TLD defaults. "" means no rule claims the bookmark.
func ruleCategory(b model.Bookmark) string {
	host := b.Domain()
	var path string
	if u, err := url.Parse(strings.TrimSpace(b.URL)); err == nil {
		path = strings.ToLower(u.Path)
	}

	if c := domainCategory(host, path); c != "" {
		return c
	}
	if c := titleCategory(b.Title); c != "" {
		return c
	}
	if c := pathCategory(path); c != "" {
		return c
	}
	if len(b.FolderPath) > 0 && b.FolderPath[0] != "" {
		return b.FolderPath[0]
	}
	return tldCategory(host)
}

func domainCategory(host, path string) string {
	if host == "" {
		return ""
	}
	hostPath := host + path
	for _, r := range domainRules {
		if strings.Contains(r.pattern, "/") {
			if strings.Contains(hostPath, r.pattern) {
				return r.category
			}
			continue
		}
		if host == r.pattern || strings.HasSuffix(host, "."+r.pattern) {
			return r.category
		}
	}
	return ""
}

func titleCategory(title string) string {
	tokens := tokenize(title)
	if len(tokens) == 0 {
		return ""
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	for _, r := range titleRules {
		if set[r.pattern] {
			return r.category
		}
	}
	return ""
}

func pathCategory(path string) string {
	if path == "" {
		return ""
	}
	for _, r := range pathRules {
		if strings.Contains(path, r.pattern) {
			return r.category
		}
	}
	return ""
}

func tldCategory(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	return tldCategories[parts[len(parts)-1]]
}
