// Package grid loads raw source files into a rectangular-ish grid of cell
// strings and offers the landmark scans the normalizers are built on.
package grid

import "strings"

// Grid is a sheet of cells. Rows may have different lengths.
type Grid [][]string

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Cell returns the cell at (r, c) or "" when out of bounds.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return g[r][c]
}

// Row returns row r or nil when out of bounds.
func (g Grid) Row(r int) []string {
	if r < 0 || r >= len(g) {
		return nil
	}
	return g[r]
}

// RowText joins the cells of row r with single spaces.
func (g Grid) RowText(r int) string {
	return strings.Join(g.Row(r), " ")
}

// FindRow returns the first row index for which match is true, or -1.
func (g Grid) FindRow(match func(row []string) bool) int {
	for i, row := range g {
		if match(row) {
			return i
		}
	}
	return -1
}

// FindRowContaining returns the first row whose joined text contains token,
// or -1.
func (g Grid) FindRowContaining(token string) int {
	return g.FindRow(func(row []string) bool {
		return strings.Contains(strings.Join(row, " "), token)
	})
}

// FindCellContaining returns the first column of row r whose cell contains
// token, or -1.
func (g Grid) FindCellContaining(r int, token string) int {
	for c, cell := range g.Row(r) {
		if strings.Contains(cell, token) {
			return c
		}
	}
	return -1
}
