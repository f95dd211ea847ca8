package align

import "bytes"

// Cost weights for the substitution aligner. All three default to 1 unit.
const (
	positionCost = 1.0
	lengthCost   = 1.0
	charCost     = 1.0
)

type cell struct{ i, j int }

type backlink struct {
	isMatch bool
	prev    cell
}

// searchRange enumerates candidate predecessor cells for (x, y), pruned
// by a 2-D LCS-length table computed backwards from (x-1, y-1): a row
// stops being scanned once its running LCS length reaches lmax, since
// beyond that point str1[..x) and str2[..y) share a long enough common
// run that treating the gap as one substitution is never cheaper.
func searchRange(x, y int, str1, str2 []byte, lmax int) []cell {
	if x <= 0 || y <= 0 {
		return nil
	}

	lcs := make([][]int, x+1)
	for i := range lcs {
		lcs[i] = make([]int, y+1)
	}

	var candidates []cell
	for i := x - 1; i >= 0; i-- {
		rowPruned := false
		for j := y - 1; j >= 0 && !rowPruned; j-- {
			if str1[i] == str2[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}

			if lcs[i][j] >= lmax {
				rowPruned = true
				continue
			}

			candidates = append(candidates, cell{i, j})
		}
		if rowPruned {
			break
		}
	}

	return candidates
}

// Substitution computes a minimum-cost op-list aligning target against
// reference via dynamic programming over an (m+1)x(n+1) table, where
// matches are free and every non-match gap is priced as one substitution
// operation: a flat position+length charge plus a per-inserted-byte
// charge.
func Substitution(reference, target []byte) ([]Operation, float64) {
	if bytes.Equal(reference, target) {
		return nil, 0
	}

	m, n := len(reference), len(target)

	if m == 0 {
		return []Operation{{Position: 0, DelLen: 0, InsLen: n, Substr: string(target)}},
			positionCost + lengthCost*2 + charCost*float64(n)
	}
	if n == 0 {
		return []Operation{{Position: 0, DelLen: m, InsLen: 0, Substr: ""}},
			positionCost + lengthCost*2
	}

	dp := make([][]float64, m+1)
	bt := make([][]backlink, m+1)
	for i := range dp {
		dp[i] = make([]float64, n+1)
		bt[i] = make([]backlink, n+1)
	}

	for j := 0; j <= n; j++ {
		if j == 0 {
			bt[0][0] = backlink{isMatch: true, prev: cell{-1, -1}}
			continue
		}
		dp[0][j] = positionCost + lengthCost*2 + charCost*float64(j)
		bt[0][j] = backlink{isMatch: false, prev: cell{0, j - 1}}
	}

	for i := 0; i <= m; i++ {
		if i == 0 {
			continue
		}
		dp[i][0] = positionCost + lengthCost*2
		bt[i][0] = backlink{isMatch: false, prev: cell{i - 1, 0}}
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if reference[i-1] == target[j-1] {
				dp[i][j] = dp[i-1][j-1]
				bt[i][j] = backlink{isMatch: true, prev: cell{i - 1, j - 1}}
				continue
			}

			candidates := searchRange(i, j, reference, target, 3)
			minCost := float64(0)
			best := cell{-1, -1}
			found := false

			for _, pos := range candidates {
				cost := dp[pos.i][pos.j]
				if bt[pos.i][pos.j].isMatch {
					cost += positionCost + lengthCost*2
				}
				cost += charCost * float64(j-pos.j)

				if !found || cost < minCost {
					minCost = cost
					best = pos
					found = true
				}
			}

			dp[i][j] = minCost
			bt[i][j] = backlink{isMatch: false, prev: best}
		}
	}

	type tempOp struct {
		pos, delLen, insLen int
		substr              string
	}

	var tempOps []tempOp
	i, j := m, n
	for i > 0 || j > 0 {
		link := bt[i][j]
		if link.isMatch {
			i, j = link.prev.i, link.prev.j
			continue
		}

		delLen := i - link.prev.i
		insLen := j - link.prev.j
		tempOps = append(tempOps, tempOp{link.prev.i, delLen, insLen, string(target[link.prev.j : link.prev.j+insLen])})
		i, j = link.prev.i, link.prev.j
	}

	var ops []Operation
	for k := len(tempOps) - 1; k >= 0; k-- {
		t := tempOps[k]
		if len(ops) > 0 {
			last := &ops[len(ops)-1]
			if last.Position+last.DelLen == t.pos {
				last.DelLen += t.delLen
				if t.insLen > 0 {
					last.InsLen += t.insLen
					last.Substr += t.substr
				}
				continue
			}
		}
		ops = append(ops, Operation{t.pos, t.delLen, t.insLen, t.substr})
	}

	return ops, dp[m][n]
}
