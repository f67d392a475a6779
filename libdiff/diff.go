// Package libdiff computes structural diffs of decoded documents.
//
// A diff is itself an IR node: nil when the inputs are equal,
// otherwise a map whose "-" entry holds removed content and whose "+"
// entry holds added content, nested along the document structure.
// Map and array alignment runs on go-diff's rune diffing, with keys
// and element hashes mapped to runes.
package libdiff

import (
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sibircevs/mpack/debug"
	"github.com/sibircevs/mpack/ir"
)

// DiffFunc computes a diff node for two aligned values, nil when
// equal.
type DiffFunc func(from, to *ir.Node) *ir.Node

// Diff returns a diff node describing how to get from one document to
// the other, or nil when they are equal.
func Diff(from, to *ir.Node) *ir.Node {
	if ir.Compare(from, to) == 0 {
		return nil
	}
	if debug.Diff() {
		debug.Logf("diff at %v vs %v\n", typeOf(from), typeOf(to))
	}
	if from == nil || to == nil || from.Type != to.Type {
		return MakeDiff(from, to)
	}
	switch from.Type {
	case ir.MapType:
		return DiffMap(from, to, Diff)
	case ir.ArrayType:
		return DiffArray(from, to, Diff)
	default:
		return MakeDiff(from, to)
	}
}

// MakeDiff builds the leaf diff form: a map holding the removed and
// added sides under "-" and "+".
func MakeDiff(from, to *ir.Node) *ir.Node {
	res := map[string]*ir.Node{}
	if from != nil {
		res["-"] = from.Clone()
	}
	if to != nil {
		res["+"] = to.Clone()
	}
	return ir.FromMap(res)
}

// DiffMap diffs two map nodes field-wise. Key sequences are aligned
// with rune diffing; values under keys present on both sides recurse
// through df.
func DiffMap(from, to *ir.Node, df DiffFunc) *ir.Node {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	resMap := map[string]*ir.Node{}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				resMap[ir.KeyString(from.Fields[fi])] = MakeDiff(from.Values[fi], nil)
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				fRes := df(from.Values[fi], to.Values[ti])
				if fRes != nil {
					resMap[runeMap[r]] = fRes
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				resMap[ir.KeyString(to.Fields[ti])] = MakeDiff(nil, to.Values[ti])
				ti++
			}
		}
	}
	if len(resMap) == 0 {
		return nil
	}
	return ir.FromMap(resMap)
}

// DiffArray diffs two array nodes, aligning elements by content hash.
// Changed positions appear in the result under "-index" (removed from
// the first document) and "+index" (added in the second).
func DiffArray(from, to *ir.Node, df DiffFunc) *ir.Node {
	hashMap := map[uint64]rune{}
	fromRunes := mapElementsTo(hashMap, from)
	toRunes := mapElementsTo(hashMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	resMap := map[string]*ir.Node{}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				resMap["-"+strconv.Itoa(fi)] = from.Values[fi].Clone()
				fi++
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				resMap["+"+strconv.Itoa(ti)] = to.Values[ti].Clone()
				ti++
			}
		}
	}
	if len(resMap) == 0 {
		return nil
	}
	return ir.FromMap(resMap)
}

func typeOf(y *ir.Node) string {
	if y == nil {
		return "absent"
	}
	return y.Type.String()
}

func mapFieldsTo(m map[string]rune, im map[rune]string, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i := range node.Fields {
		f := ir.KeyString(node.Fields[i])
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
			im[r] = f
		}
		rs[i] = r
	}
	return rs
}

func mapElementsTo(m map[uint64]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i := range node.Values {
		h := node.Values[i].Hash()
		r, ok := m[h]
		if !ok {
			r = rune(len(m))
			m[h] = r
		}
		rs[i] = r
	}
	return rs
}
