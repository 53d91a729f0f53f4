package fold

import (
	"fmt"
	"strings"
)

// Render draws the folding as a textual grid. Residues sit on a 2x
// stretched lattice with '-' and '|' glyphs on the half-step cells
// between chain neighbors. Hydrophobic residues render as 'H', polar as
// 'P', and any other residue as its own rune.
func (c Conformation) Render() string {
	if len(c.Positions) == 0 {
		return ""
	}

	minX, maxX := c.Positions[0].X, c.Positions[0].X
	minY, maxY := c.Positions[0].Y, c.Positions[0].Y
	for _, p := range c.Positions[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	width := (maxX-minX)*2 + 1
	height := (maxY-minY)*2 + 1
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	prev := c.Positions[0]
	for i, p := range c.Positions {
		col := (p.X - minX) * 2
		row := (p.Y - minY) * 2
		grid[row][col] = c.Seq.Rune(i)
		if i > 0 {
			// Bond glyph on the half-step cell between this residue
			// and its chain predecessor.
			bondRow := row + (prev.Y-p.Y)
			bondCol := col + (prev.X-p.X)
			if prev.X != p.X {
				grid[bondRow][bondCol] = '-'
			} else {
				grid[bondRow][bondCol] = '|'
			}
		}
		prev = p
	}

	var sb strings.Builder
	// Highest Y first so the initial "up" heading points up on screen.
	for row := height - 1; row >= 0; row-- {
		sb.WriteString(strings.TrimRight(string(grid[row]), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StatusString summarizes an individual the way run logs report it.
func (c Conformation) StatusString() string {
	return fmt.Sprintf("fitness=%d generation=%d encoding=%s", c.Fitness, c.Generation, c.EncodingString())
}
