package align

import "sort"

// qgrams pads str with distinct left/right sentinels so that boundary
// q-grams carry positional information, then returns its overlapping
// q-grams of length q in order.
func qgrams(str []byte, q int) [][]byte {
	padded := make([]byte, 0, len(str)+2*(q-1))
	for i := 0; i < q-1; i++ {
		padded = append(padded, '$')
	}
	padded = append(padded, str...)
	for i := 0; i < q-1; i++ {
		padded = append(padded, '#')
	}

	grams := make([][]byte, 0, len(padded)-q+1)
	for i := 0; i+q <= len(padded); i++ {
		grams = append(grams, padded[i:i+q])
	}

	return grams
}

// QGram approximately aligns target against reference using shared
// q-grams as anchors, returning an op-list and a synthetic cost used to
// decide whether the match is worth keeping over a literal encoding.
func QGram(reference, target []byte, q int) ([]Operation, float64) {
	lenRef := len(reference)
	lenTarget := len(target)

	gram1 := qgrams(reference, q)
	gram2 := qgrams(target, q)

	count1 := make(map[string]int, len(gram1))
	count2 := make(map[string]int, len(gram2))
	for _, g := range gram1 {
		count1[string(g)]++
	}
	for _, g := range gram2 {
		count2[string(g)]++
	}

	var common []string
	for g := range count1 {
		if count2[g] > 0 {
			common = append(common, g)
		}
	}
	sort.Strings(common)

	index := make(map[string]int, len(common))
	for i, g := range common {
		index[g] = i
	}

	var common1, index1 []int
	for i, g := range gram1 {
		if idx, ok := index[string(g)]; ok {
			common1 = append(common1, idx)
			index1 = append(index1, i)
		}
	}

	var common2, index2 []int
	for i, g := range gram2 {
		if idx, ok := index[string(g)]; ok {
			common2 = append(common2, idx)
			index2 = append(index2, i)
		}
	}

	remaining2 := make(map[string]int, len(common))
	for _, g := range common {
		remaining2[g] = count2[g]
	}

	type pair struct{ x, y int }

	var matches []pair
	p2 := 0
	for p1 := 0; p1 < len(common1); p1++ {
		gramIdx := common1[p1]
		gram := common[gramIdx]
		if remaining2[gram] == 0 {
			continue
		}

		for p2 < len(common2) && common2[p2] != gramIdx {
			remaining2[common[common2[p2]]]--
			p2++
		}
		if p2 < len(common2) && common2[p2] == gramIdx {
			matches = append(matches, pair{index1[p1], index2[p2]})
			remaining2[gram]--
			p2++
		}
	}

	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	type run struct{ begin, end pair }

	var runs []run
	if len(matches) > 0 {
		prev := matches[0]
		begin := prev
		for i := 1; i < len(matches); i++ {
			item := matches[i]
			switch {
			case prev.x == item.x+1 && prev.y == item.y+1:
				prev = item
			case prev.x > item.x+(q-1) && prev.y > item.y+(q-1):
				runs = append(runs, run{begin, prev})
				prev = item
				begin = item
			}
		}
		runs = append(runs, run{begin, prev})
	}

	type span struct{ xBegin, xEnd, yBegin, yEnd int }

	spans := make([]span, 0, len(runs))
	for _, r := range runs {
		xBegin := r.end.x - (q - 1)
		xEnd := r.begin.x
		yBegin := r.end.y - (q - 1)
		yEnd := r.begin.y

		if xBegin < 0 {
			xBegin = 0
		}
		if yBegin < 0 {
			yBegin = 0
		}
		if xEnd > lenRef-1 {
			xEnd = lenRef - 1
		}
		if yEnd > lenTarget-1 {
			yEnd = lenTarget - 1
		}

		spans = append(spans, span{xBegin, xEnd, yBegin, yEnd})
	}

	for i, j := 0, len(spans)-1; i < j; i, j = i+1, j-1 {
		spans[i], spans[j] = spans[j], spans[i]
	}

	var ops []Operation
	prev := span{-1, -1, -1, -1}
	for _, s := range spans {
		if s.xBegin != 0 || s.yBegin != 0 {
			position := prev.xEnd + 1
			delLen := s.xBegin - prev.xEnd - 1
			insLen := s.yBegin - prev.yEnd - 1
			substr := string(target[prev.yEnd+1 : s.yBegin])
			ops = append(ops, Operation{position, delLen, insLen, substr})
		}
		prev = s
	}

	if lenRef != prev.xEnd+1 || lenTarget != prev.yEnd+1 {
		ops = append(ops, Operation{
			Position: prev.xEnd + 1,
			DelLen:   lenRef - prev.xEnd - 1,
			InsLen:   lenTarget - prev.yEnd - 1,
			Substr:   string(target[prev.yEnd+1:]),
		})
	}

	cost := 5.0
	for _, op := range ops {
		cost += 3.0 + float64(op.InsLen)
	}

	return ops, cost
}
