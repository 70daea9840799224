// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// Selectors for the marketplace search flow. The listing card classes are
// shared with parse.go; these cover navigation.
const (
	searchBoxSelector = "input#cb1-edit"
	nextPageSelector  = `a[title="Siguiente"]`
)

// Session owns a launched Chromium instance and the single tab the search
// flow runs in.
type Session struct {
	cfg      types.ScrapeConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession launches a browser according to cfg and connects to it.
// Callers must Close the session to release the browser process.
func NewSession(cfg types.ScrapeConfig) (*Session, error) {
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Session{cfg: cfg, launcher: l, browser: browser}, nil
}

// Close shuts down the browser and cleans up the launcher's temp data.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}

// Search opens the marketplace front page, types keyword into the search box,
// submits, and waits for the first results to render.
func (s *Session) Search(ctx context.Context, keyword string) error {
	if s.page == nil {
		page, err := s.browser.Page(proto.TargetCreateTarget{URL: s.cfg.BaseURL})
		if err != nil {
			return fmt.Errorf("opening %s: %w", s.cfg.BaseURL, err)
		}
		s.page = page
	}

	p := s.page.Context(ctx).Timeout(s.cfg.NavigationTimeout)

	if err := p.Navigate(s.cfg.BaseURL); err != nil {
		return fmt.Errorf("navigating to %s: %w", s.cfg.BaseURL, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", s.cfg.BaseURL, err)
	}

	box, err := p.Element(searchBoxSelector)
	if err != nil {
		return fmt.Errorf("finding search box: %w", err)
	}
	if err := box.SelectAllText(); err != nil {
		return fmt.Errorf("clearing search box: %w", err)
	}
	if err := box.Input(keyword); err != nil {
		return fmt.Errorf("typing keyword: %w", err)
	}
	if err := box.Type(input.Enter); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}

	if _, err := p.Element(cardSelector); err != nil {
		return fmt.Errorf("waiting for results: %w", err)
	}
	return nil
}

// HTML returns the rendered markup of the current results page.
func (s *Session) HTML() (string, error) {
	if s.page == nil {
		return "", fmt.Errorf("no page open: call Search first")
	}
	return s.page.HTML()
}

// NextPage clicks the pagination link and waits for the next results to
// render. It returns false without error when no next page exists.
func (s *Session) NextPage(ctx context.Context) (bool, error) {
	if s.page == nil {
		return false, fmt.Errorf("no page open: call Search first")
	}

	p := s.page.Context(ctx).Timeout(s.cfg.NavigationTimeout)

	has, next, err := p.Has(nextPageSelector)
	if err != nil {
		return false, fmt.Errorf("locating next-page link: %w", err)
	}
	if !has {
		return false, nil
	}

	if err := next.ScrollIntoView(); err != nil {
		return false, fmt.Errorf("scrolling to pagination: %w", err)
	}
	if err := next.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, fmt.Errorf("clicking next page: %w", err)
	}

	if _, err := p.Element(cardSelector); err != nil {
		return false, fmt.Errorf("waiting for next results: %w", err)
	}
	return true, nil
}
