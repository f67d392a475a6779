package patch

import (
	"testing"

	"github.com/sibircevs/mpack/ir"
)

func TestApply(t *testing.T) {
	doc := ir.FromMap(map[string]*ir.Node{
		"name": ir.FromString("svc"),
		"port": ir.FromInt(8080),
		"tags": ir.FromSlice([]*ir.Node{ir.FromString("a")}),
	})
	patchDoc := []byte(`[
		{"op": "replace", "path": "/port", "value": 9090},
		{"op": "add", "path": "/tags/-", "value": "b"},
		{"op": "remove", "path": "/name"}
	]`)
	res, err := Apply(doc, patchDoc)
	if err != nil {
		t.Fatal(err)
	}
	if p := ir.Get(res, "port"); p == nil || p.Type != ir.IntType || p.Int64 != 9090 {
		t.Errorf("port = %v", p)
	}
	tags := ir.Get(res, "tags")
	if tags == nil || tags.Len() != 2 || tags.Values[1].String != "b" {
		t.Errorf("tags = %v", tags)
	}
	if ir.Get(res, "name") != nil {
		t.Error("name should be removed")
	}
	// original untouched
	if ir.Get(doc, "name") == nil || ir.Get(doc, "port").Int64 != 8080 {
		t.Error("Apply modified its input")
	}
}

func TestApplyTestOp(t *testing.T) {
	doc := ir.FromMap(map[string]*ir.Node{"v": ir.FromInt(1)})
	ok := []byte(`[{"op": "test", "path": "/v", "value": 1}]`)
	if _, err := Apply(doc, ok); err != nil {
		t.Errorf("passing test op failed: %v", err)
	}
	bad := []byte(`[{"op": "test", "path": "/v", "value": 2}]`)
	if _, err := Apply(doc, bad); err == nil {
		t.Error("failing test op should error")
	}
}

func TestApplyBadPatch(t *testing.T) {
	doc := ir.FromMap(map[string]*ir.Node{"v": ir.FromInt(1)})
	if _, err := Apply(doc, []byte(`{not json`)); err == nil {
		t.Error("malformed patch should error")
	}
	if _, err := Apply(doc, []byte(`[{"op": "remove", "path": "/missing"}]`)); err == nil {
		t.Error("removing a missing path should error")
	}
}
