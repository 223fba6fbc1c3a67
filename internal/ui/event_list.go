package ui

import (
	"fmt"
	"strings"

	"nh3lab.klederson.com/internal/detector"
	"nh3lab.klederson.com/internal/synth"
)

// RenderEventList renders the scrollable list of classified events. The
// scripted events stay fixed at the top; only the detections scroll.
// stepMin converts sample ticks to minutes.
func RenderEventList(found []detector.Classification, scripted []synth.Descriptor, stepMin float64, width, height, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	// Fixed header: title + separator + script bar (3 lines)
	title := StylePanelTitle.Render(fmt.Sprintf("DETECTIONS [%d]", len(found)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator, renderScriptBar(scripted, innerW)}
	headerCount := len(headerLines)

	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}

	// Space available for event entries
	space := innerH - headerCount
	if space < 1 {
		space = 1
	}

	var entryLines []string
	if len(found) == 0 {
		entryLines = append(entryLines, "")
		entryLines = append(entryLines, StyleHelp.Render(" No events yet..."))
		entryLines = append(entryLines, StyleHelp.Render(" Waiting for trigger"))
	} else {
		linesPerEntry := 4 // 3 content + 1 blank
		maxVisible := space / linesPerEntry
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Compute viewport start so cursor is always visible
		viewStart := 0
		if cursorIndex >= maxVisible {
			viewStart = cursorIndex - maxVisible + 1
		}

		count := 0
		for i := viewStart; i < len(found) && count < space; i++ {
			for _, l := range renderEventEntry(i, found[i], stepMin, innerW, i == cursorIndex) {
				if count >= space {
					break
				}
				entryLines = append(entryLines, l)
				count++
			}
		}
	}

	if len(entryLines) > space {
		entryLines = entryLines[:space]
	}
	for len(entryLines) < space {
		entryLines = append(entryLines, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, entryLines...)

	content := strings.Join(all, "\n")
	return clampHeight(StylePanelBorder.Width(width-2).Height(innerH).Render(content), height)
}

func renderEventEntry(i int, c detector.Classification, stepMin float64, maxW int, isCursor bool) []string {
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	raw1 := fmt.Sprintf("%s #%d %s", cursor, i+1, c.Event)
	raw2 := fmt.Sprintf("     %s -> %s  peak@%s",
		formatMinutes(float64(c.StartTick)*stepMin),
		formatMinutes(float64(c.EndTick)*stepMin),
		formatMinutes(float64(c.PeakTick)*stepMin))
	raw3 := fmt.Sprintf("     peak %.1fppm  +%.1f over %.1f", c.PeakPPM, c.Delta(), c.Baseline)

	raw1 = truncRaw(raw1, maxW)
	raw2 = truncRaw(raw2, maxW)
	raw3 = truncRaw(raw3, maxW)

	if isCursor {
		return []string{cursorRowSty.Render(raw1), cursorRowSty.Render(raw2), cursorRowSty.Render(raw3), ""}
	}

	head := StyleEventUrination
	if c.Event == detector.Defecation {
		head = StyleEventDefecation
	}
	return []string{head.Render(raw1), StyleEventDetail.Render(raw2), StyleEventDetail.Render(raw3), ""}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}

func renderScriptBar(scripted []synth.Descriptor, maxW int) string {
	if len(scripted) == 0 {
		return StyleFilterInactive.Render(" script: none")
	}
	bar := StyleFilterInactive.Render(" script:")
	used := len(" script:")
	for _, ev := range scripted {
		tag := fmt.Sprintf(" %s@%s", strings.ToUpper(ev.Kind().String()[:1]), formatMinutes(ev.Start()))
		if used+len(tag) > maxW {
			break
		}
		used += len(tag)
		if ev.Kind() == synth.Defecation {
			bar += StyleEventDefecation.Render(tag)
		} else {
			bar += StyleEventUrination.Render(tag)
		}
	}
	return bar
}
