package main

// moveComponentInOrder shifts a component one slot within its page's display order.
// delta < 0 moves it toward the front of the list (drawn first), delta > 0 toward the
// end (drawn last, on top).
func (m *model) moveComponentInOrder(componentID string, delta int) Outcome {
	_, page, ok := m.app.FindComponent(componentID)
	if !ok {
		return NotFound
	}
	idx := page.indexOf(componentID)
	target := idx + delta
	if target < 0 || target >= len(page.Components) {
		return Rejected
	}
	page.Components[idx], page.Components[target] = page.Components[target], page.Components[idx]
	return m.app.UpdatePageComponents(page.ID, page.Components)
}

// sendToAdjacentPage moves the selected component to the previous or next page,
// keeping its position.
func (m *model) sendToAdjacentPage(componentID string, delta int) Outcome {
	comp, page, ok := m.app.FindComponent(componentID)
	if !ok {
		return NotFound
	}
	pages := m.app.Pages()
	from := m.pageIndexByID(page.ID)
	to := from + delta
	if to < 0 || to >= len(pages) {
		return Rejected
	}
	outcome := m.app.MoveComponentAcrossPages(comp.ID, page.ID, pages[to].ID, comp.X, comp.Y)
	if outcome == Applied {
		m.focusPage(to)
	}
	return outcome
}
