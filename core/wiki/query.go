package wiki

import (
	"context"
	"net/url"

	"github.com/gaurav-prasanna/wikiq/core"
)

// DisambiguationSuffix is appended to a title to address its disambiguation page.
const DisambiguationSuffix = " (disambiguation)"

// mainNamespace is the article namespace; talk, category and other meta
// links live in non-zero namespaces.
const mainNamespace = 0

// Summary returns the plain-text intro of the page, following redirects.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	page, err := c.SummaryPage(ctx, title)
	if err != nil {
		return "", err
	}
	return *page.Extract, nil
}

// SummaryPage is Summary keeping the resolved page, whose Title is the
// redirect target when title is a redirect. Extract is always set.
func (c *Client) SummaryPage(ctx context.Context, title string) (*Page, error) {
	page, err := c.Query(ctx, url.Values{
		"prop":        {"extracts"},
		"exintro":     {""},
		"explaintext": {""},
		"redirects":   {""},
		"titles":      {title},
	})
	if err != nil {
		return nil, err
	}
	if page.Extract == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// PageURL returns the canonical URL of the page, following redirects.
func (c *Client) PageURL(ctx context.Context, title string) (string, error) {
	page, err := c.Query(ctx, url.Values{
		"prop":      {"info"},
		"inprop":    {"url"},
		"redirects": {""},
		"titles":    {title},
	})
	if err != nil {
		return "", err
	}
	if page.FullURL == nil {
		return "", ErrPageNotFound
	}
	return *page.FullURL, nil
}

// Article fetches the resolved title, canonical URL and HTML intro of the
// page in a single request.
func (c *Client) Article(ctx context.Context, title string) (*core.Article, error) {
	page, err := c.Query(ctx, url.Values{
		"prop":      {"extracts|info"},
		"exintro":   {""},
		"inprop":    {"url"},
		"redirects": {""},
		"titles":    {title},
	})
	if err != nil {
		return nil, err
	}
	if page.Extract == nil {
		return nil, ErrPageNotFound
	}

	a := &core.Article{Title: page.Title, HTML: *page.Extract}
	if page.FullURL != nil {
		a.URL = *page.FullURL
	}
	return a, nil
}

// DisambiguationList returns the namespace-0 link titles of
// "<title> (disambiguation)", in the order the API lists them. Link lists
// longer than one API batch are followed through their continuation.
func (c *Client) DisambiguationList(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"prop":    {"links"},
		"pllimit": {"max"},
		"titles":  {title + DisambiguationSuffix},
	}

	var titles []string
	for {
		r, err := c.Do(ctx, params)
		if err != nil {
			return nil, err
		}
		page, err := r.Page()
		if err != nil {
			return nil, &DisambiguationNotFoundError{Title: title}
		}
		titles = append(titles, mainNamespaceTitles(page.Links)...)

		if len(r.Continue) == 0 {
			break
		}
		for k, v := range r.Continue {
			params.Set(k, v)
		}
	}

	if len(titles) == 0 {
		return nil, &DisambiguationNotFoundError{Title: title}
	}
	return titles, nil
}

// DisambiguationTitle returns the index-th (1-based) entry of the
// disambiguation list for title.
func (c *Client) DisambiguationTitle(ctx context.Context, title string, index int) (string, error) {
	list, err := c.DisambiguationList(ctx, title)
	if err != nil {
		return "", err
	}
	return SelectDisambiguation(list, index)
}

// SelectDisambiguation picks the index-th (1-based) element of list.
func SelectDisambiguation(list []string, index int) (string, error) {
	if index < 1 || index > len(list) {
		return "", &IndexOutOfRangeError{Index: index, Len: len(list)}
	}
	return list[index-1], nil
}

func mainNamespaceTitles(links []core.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l.NS == mainNamespace {
			out = append(out, l.Title)
		}
	}
	return out
}

