package qr

// Penalty weights from ISO/IEC 18004 section 7.8.3.1.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// Penalty scores a square grid of modules, rows first ([y][x]), as the sum
// of the four mask evaluation rules. Lower is better.
func Penalty(grid [][]bool) int {
	return PenaltyRuns(grid) + PenaltyBlocks(grid) + PenaltyFinderLike(grid) + PenaltyBalance(grid)
}

// PenaltyRuns scores runs of five or more same-coloured modules in a row or
// column: N1 plus one per module beyond five.
func PenaltyRuns(grid [][]bool) int {
	n := len(grid)
	score := 0
	for i := 0; i < n; i++ {
		rowRun, colRun := 1, 1
		for j := 1; j < n; j++ {
			if grid[i][j] == grid[i][j-1] {
				rowRun++
			} else {
				score += runScore(rowRun)
				rowRun = 1
			}
			if grid[j][i] == grid[j-1][i] {
				colRun++
			} else {
				score += runScore(colRun)
				colRun = 1
			}
		}
		score += runScore(rowRun) + runScore(colRun)
	}
	return score
}

func runScore(run int) int {
	if run < 5 {
		return 0
	}
	return penaltyN1 + run - 5
}

// PenaltyBlocks scores every 2x2 block of one colour, overlapping blocks
// counted separately.
func PenaltyBlocks(grid [][]bool) int {
	n := len(grid)
	score := 0
	for y := 0; y+1 < n; y++ {
		for x := 0; x+1 < n; x++ {
			c := grid[y][x]
			if grid[y][x+1] == c && grid[y+1][x] == c && grid[y+1][x+1] == c {
				score += penaltyN2
			}
		}
	}
	return score
}

// PenaltyFinderLike scores each 1:1:3:1:1 dark-light-dark-light-dark run
// sequence, at any module scale, with a light run of at least four times the
// unit on one side, in rows and columns. The area beyond the grid edge
// counts as light.
func PenaltyFinderLike(grid [][]bool) int {
	n := len(grid)
	score := 0
	for i := 0; i < n; i++ {
		score += finderLikeLine(n, func(j int) bool { return grid[i][j] })
		score += finderLikeLine(n, func(j int) bool { return grid[j][i] })
	}
	return score
}

func finderLikeLine(n int, at func(int) bool) int {
	h := runHistory{size: n}
	count := 0
	dark, run := false, 0
	for j := 0; j < n; j++ {
		if at(j) == dark {
			run++
			continue
		}
		h.push(run)
		if !dark {
			count += h.patterns()
		}
		dark, run = at(j), 1
	}
	// Close the line against the light edge.
	if dark {
		h.push(run)
		run = 0
	}
	h.push(run + n)
	count += h.patterns()
	return count * penaltyN3
}

// runHistory holds the lengths of the last seven runs, newest first.
type runHistory struct {
	size int
	runs [7]int
}

func (h *runHistory) push(run int) {
	// The first run touches the edge; extend it with light quiet zone.
	if h.runs[0] == 0 {
		run += h.size
	}
	copy(h.runs[1:], h.runs[:6])
	h.runs[0] = run
}

// patterns counts finder-like sequences ending at the newest light run.
func (h *runHistory) patterns() int {
	r := h.runs
	u := r[1]
	if u == 0 || r[2] != u || r[3] != 3*u || r[4] != u || r[5] != u {
		return 0
	}
	count := 0
	if r[0] >= 4*u && r[6] >= u {
		count++
	}
	if r[6] >= 4*u && r[0] >= u {
		count++
	}
	return count
}

// PenaltyBalance scores the deviation of the dark module share from 50%:
// N4 for every full 5% step away, rounded the same way either side of 50%.
func PenaltyBalance(grid [][]bool) int {
	n := len(grid)
	if n == 0 {
		return 0
	}
	dark := 0
	for _, row := range grid {
		for _, d := range row {
			if d {
				dark++
			}
		}
	}
	total := n * n
	k := (abs(dark*20-total*10)+total-1)/total - 1
	return max(k, 0) * penaltyN4
}
