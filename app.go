package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Outcome reports whether a state operation changed anything. Operations that do not
// return Applied leave the state untouched.
type Outcome int

const (
	Applied Outcome = iota
	NotFound
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotFound:
		return "not found"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// App is the single owner of pages, components and the selection. Views receive
// copies from Pages and report changes back through its methods.
type App struct {
	pages    []Page
	selected string
	newID    func(prefix string) string
	log      *slog.Logger
}

var idFallbackSeq atomic.Int64

// timeID returns a time-based unique id: a version 1 UUID, or a nanosecond timestamp
// with a sequence number when no node id is available.
func timeID(prefix string) string {
	if id, err := uuid.NewUUID(); err == nil {
		return prefix + "-" + id.String()
	}
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), idFallbackSeq.Add(1))
}

func NewApp(logger *slog.Logger) *App {
	if logger == nil {
		logger = discardLogger()
	}
	return &App{
		pages: []Page{{ID: "page-1", Name: "Home", Components: []Component{}}},
		newID: timeID,
		log:   logger.With(slog.String("component", "state")),
	}
}

func (a *App) Pages() []Page {
	pages := make([]Page, len(a.pages))
	for i, p := range a.pages {
		pages[i] = p.clone()
	}
	return pages
}

func (a *App) PageCount() int {
	return len(a.pages)
}

func (a *App) Page(pageID string) (Page, bool) {
	idx := a.pageIndex(pageID)
	if idx == -1 {
		return Page{}, false
	}
	return a.pages[idx].clone(), true
}

func (a *App) pageIndex(pageID string) int {
	for i, p := range a.pages {
		if p.ID == pageID {
			return i
		}
	}
	return -1
}

func (a *App) AddPage() Page {
	page := Page{
		ID:         a.newID("page"),
		Name:       fmt.Sprintf("Page %d", len(a.pages)+1),
		Components: []Component{},
	}
	a.pages = append(a.pages, page)
	a.log.Debug("page added", slog.String("page", page.ID), slog.String("name", page.Name))
	return page.clone()
}

func (a *App) DeletePage(pageID string) Outcome {
	if len(a.pages) <= 1 {
		a.log.Warn("delete page skipped: last page", slog.String("page", pageID))
		return Rejected
	}
	idx := a.pageIndex(pageID)
	if idx == -1 {
		a.log.Warn("delete page skipped: unknown page", slog.String("page", pageID))
		return NotFound
	}
	if a.selected != "" && a.pages[idx].indexOf(a.selected) != -1 {
		a.selected = ""
	}
	a.pages = append(a.pages[:idx], a.pages[idx+1:]...)
	a.log.Debug("page deleted", slog.String("page", pageID))
	return Applied
}

func (a *App) RenamePage(pageID, name string) Outcome {
	idx := a.pageIndex(pageID)
	if idx == -1 {
		a.log.Warn("rename skipped: unknown page", slog.String("page", pageID))
		return NotFound
	}
	a.pages[idx].Name = name
	return Applied
}

func (a *App) UpdatePageComponents(pageID string, components []Component) Outcome {
	idx := a.pageIndex(pageID)
	if idx == -1 {
		a.log.Warn("update components skipped: unknown page", slog.String("page", pageID))
		return NotFound
	}
	updated := make([]Component, len(components))
	for i, c := range components {
		updated[i] = c.clone()
	}
	a.pages[idx].Components = updated
	a.pruneSelection()
	return Applied
}

func (a *App) MoveComponentAcrossPages(componentID, fromPageID, toPageID string, x, y int) Outcome {
	fromIdx := a.pageIndex(fromPageID)
	toIdx := a.pageIndex(toPageID)
	attrs := []any{
		slog.String("component", componentID),
		slog.String("from", fromPageID),
		slog.String("to", toPageID),
	}
	if fromIdx == -1 || toIdx == -1 {
		a.log.Warn("cross-page move skipped: unknown page", attrs...)
		return NotFound
	}
	if fromIdx == toIdx {
		a.log.Debug("cross-page move skipped: same page", attrs...)
		return Rejected
	}
	from := a.pages[fromIdx]
	compIdx := from.indexOf(componentID)
	if compIdx == -1 {
		a.log.Warn("cross-page move skipped: component not on source page", attrs...)
		return NotFound
	}

	moved := from.Components[compIdx].clone()
	moved.X, moved.Y = clampPosition(x, y)

	remaining := make([]Component, 0, len(from.Components)-1)
	remaining = append(remaining, from.Components[:compIdx]...)
	remaining = append(remaining, from.Components[compIdx+1:]...)

	a.pages[fromIdx].Components = remaining
	a.pages[toIdx].Components = append(a.pages[toIdx].Components, moved)
	a.log.Debug("component moved across pages", append(attrs, slog.Int("x", moved.X), slog.Int("y", moved.Y))...)
	return Applied
}

// SelectComponent sets the selection. An empty id clears it; unknown ids are refused.
func (a *App) SelectComponent(componentID string) Outcome {
	if componentID == "" {
		a.selected = ""
		return Applied
	}
	if _, _, ok := a.FindComponent(componentID); !ok {
		a.log.Warn("select skipped: unknown component", slog.String("component", componentID))
		return NotFound
	}
	a.selected = componentID
	return Applied
}

func (a *App) Selected() string {
	return a.selected
}

func (a *App) SelectedComponent() (Component, Page, bool) {
	if a.selected == "" {
		return Component{}, Page{}, false
	}
	return a.FindComponent(a.selected)
}

func (a *App) FindComponent(componentID string) (Component, Page, bool) {
	for _, p := range a.pages {
		if idx := p.indexOf(componentID); idx != -1 {
			return p.Components[idx].clone(), p.clone(), true
		}
	}
	return Component{}, Page{}, false
}

func (a *App) DeleteComponent(componentID string) Outcome {
	_, page, ok := a.FindComponent(componentID)
	if !ok {
		a.log.Warn("delete component skipped: unknown component", slog.String("component", componentID))
		return NotFound
	}
	idx := page.indexOf(componentID)
	remaining := append(page.Components[:idx], page.Components[idx+1:]...)
	if a.selected == componentID {
		a.selected = ""
	}
	return a.UpdatePageComponents(page.ID, remaining)
}

func (a *App) pruneSelection() {
	if a.selected == "" {
		return
	}
	if _, _, ok := a.FindComponent(a.selected); !ok {
		a.selected = ""
	}
}
