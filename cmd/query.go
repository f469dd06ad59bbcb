package cmd

// The root command orchestrates one lookup:
// normalize title → primary action → optional URL → optional export.
//
// The primary action is a summary (default), a disambiguation listing
// (--list-disambiguations) or the summary of a selected disambiguation
// entry (--disambiguation N).

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikiq/core"
	"github.com/gaurav-prasanna/wikiq/core/extract"
	"github.com/gaurav-prasanna/wikiq/core/normalize"
	"github.com/gaurav-prasanna/wikiq/core/output"
	"github.com/gaurav-prasanna/wikiq/core/render"
	"github.com/gaurav-prasanna/wikiq/core/title"
	"github.com/gaurav-prasanna/wikiq/core/wiki"
)

// lookup is what the primary action resolved, carried to the URL and
// export steps.
type lookup struct {
	title           string // page the URL and export refer to
	summary         string
	disambiguations []string
}

func (o *options) runQuery(cmd *cobra.Command, args []string) error {
	if err := o.validateFlags(cmd); err != nil {
		return err
	}

	// Select renderer up front so a bad --export fails before any request.
	var renderer core.Renderer
	if o.exportFormat != "" {
		r, err := render.ForFormat(o.exportFormat)
		if err != nil {
			return &usageError{err: err}
		}
		renderer = r
	}

	ctx := cmd.Context()
	raw := strings.Join(args, " ")
	pageTitle := title.Normalize(raw)
	o.logger.Debug("normalized title", "input", raw, "title", pageTitle)

	var (
		res *lookup
		err error
	)
	switch {
	case o.listDisambiguations:
		res, err = o.listAction(ctx, pageTitle)
	case cmd.Flags().Changed("disambiguation"):
		res, err = o.selectAction(ctx, pageTitle, o.disambiguation)
	default:
		res, err = o.summaryAction(ctx, pageTitle)
	}
	if err != nil {
		return err
	}

	if o.showURL {
		u, err := o.client.PageURL(ctx, res.title)
		if err != nil {
			return &lookupError{Title: res.title, Err: err}
		}
		o.printer.Link(u)
	}

	if renderer != nil {
		normalizer := normalize.New(siteURL(o.client.Endpoint()))
		return o.export(ctx, res, extract.New(), normalizer, renderer)
	}
	return nil
}

// siteURL returns the scheme and host of an API endpoint, the base that
// article links in extracts are relative to.
func siteURL(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// validateFlags checks flag combinations cobra cannot express on its own.
func (o *options) validateFlags(cmd *cobra.Command) error {
	if o.listDisambiguations && cmd.Flags().Changed("disambiguation") {
		return &usageError{err: fmt.Errorf("--list-disambiguations and --disambiguation are mutually exclusive")}
	}
	if cmd.Flags().Changed("output_dir") && o.exportFormat == "" {
		return &usageError{err: fmt.Errorf("--output_dir requires --export")}
	}
	return nil
}

// summaryAction prints the summary under the title the API resolved, which
// differs from pageTitle when pageTitle is a redirect.
func (o *options) summaryAction(ctx context.Context, pageTitle string) (*lookup, error) {
	page, err := o.client.SummaryPage(ctx, pageTitle)
	if err != nil {
		return nil, &lookupError{Title: pageTitle, Err: err}
	}
	resolved := page.Title
	if resolved == "" {
		resolved = pageTitle
	}
	if resolved != pageTitle {
		o.logger.Debug("redirect followed", "from", pageTitle, "to", resolved)
	}
	o.printer.Title(resolved)
	o.printer.Print("%s", *page.Extract)
	return &lookup{title: resolved, summary: *page.Extract}, nil
}

func (o *options) listAction(ctx context.Context, pageTitle string) (*lookup, error) {
	list, err := o.client.DisambiguationList(ctx, pageTitle)
	if err != nil {
		return nil, &lookupError{Title: pageTitle, Err: err}
	}
	if err := o.printer.Numbered("Title", list); err != nil {
		return nil, fmt.Errorf("printing disambiguations: %w", err)
	}
	return &lookup{title: pageTitle, disambiguations: list}, nil
}

func (o *options) selectAction(ctx context.Context, pageTitle string, index int) (*lookup, error) {
	selected, err := o.client.DisambiguationTitle(ctx, pageTitle, index)
	if err != nil {
		return nil, &lookupError{Title: pageTitle, Err: err}
	}
	o.logger.Debug("disambiguation selected", "index", index, "title", selected)
	return o.summaryAction(ctx, selected)
}

// export runs the resolved page through extract → normalize → render and
// writes the result.
func (o *options) export(ctx context.Context, res *lookup, extractor core.Extractor, normalizer core.Normalizer, renderer core.Renderer) error {
	doc, err := o.buildDocument(ctx, res, extractor, normalizer)
	if err != nil {
		return err
	}

	data, err := renderer.Render(*doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.NewWriter(o.cfg.Export.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(doc.Title, data, renderer.Extension())
	if err != nil {
		return err
	}
	o.printer.Success("Written: %s", path)
	return nil
}

func (o *options) buildDocument(ctx context.Context, res *lookup, extractor core.Extractor, normalizer core.Normalizer) (*core.Document, error) {
	doc := &core.Document{
		Language:  o.cfg.API.Language,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if res.disambiguations != nil {
		doc.Title = res.title + wiki.DisambiguationSuffix
		doc.Disambiguations = res.disambiguations
		return doc, nil
	}

	// 1. Fetch
	article, err := o.client.Article(ctx, res.title)
	if err != nil {
		return nil, &lookupError{Title: res.title, Err: err}
	}

	// 2. Extract
	content, err := extractor.Extract(article.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 3. Normalize to Markdown
	markdown, err := normalizer.Normalize(content)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	doc.Title = article.Title
	doc.URL = article.URL
	doc.Summary = res.summary
	doc.Markdown = markdown
	return doc, nil
}
