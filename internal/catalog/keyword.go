package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vmunix/marquee/internal/debounce"
	"github.com/vmunix/marquee/internal/route"
)

// KeywordTarget returns the address that typing keyword at cur navigates to.
// ok is false when the keyword causes no navigation.
func KeywordTarget(cur route.Address, keyword string) (route.Address, bool) {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		if !cur.IsSearch() || cur.Category == "" {
			return cur, false
		}
		return route.Catalog(cur.Category), true
	}

	target := route.Search(cur.Category, kw)
	if cur.Keyword == kw {
		return cur, false
	}
	return target, true
}

// KeywordInput debounces keystrokes into Browser.SetKeyword calls.
type KeywordInput struct {
	ctx     context.Context
	browser *Browser
	deb     *debounce.Debouncer
	log     *slog.Logger
}

// NewKeywordInput creates a keyword input bound to b. Debounced searches run
// with ctx; a non-positive delay uses debounce.DefaultDelay.
func NewKeywordInput(ctx context.Context, b *Browser, delay time.Duration) *KeywordInput {
	return &KeywordInput{
		ctx:     ctx,
		browser: b,
		deb:     debounce.New(delay),
		log:     b.log,
	}
}

// Input records the current text of the search box.
func (k *KeywordInput) Input(keyword string) {
	k.deb.Trigger(func() {
		if k.ctx.Err() != nil {
			return
		}
		if err := k.browser.SetKeyword(k.ctx, keyword); err != nil {
			k.log.Warn("apply keyword failed", "keyword", keyword, "error", err)
		}
	})
}

// Flush applies a pending keyword immediately.
func (k *KeywordInput) Flush() bool {
	return k.deb.Flush()
}

// Close drops a pending keyword and ignores further input.
func (k *KeywordInput) Close() {
	k.deb.Stop()
}
