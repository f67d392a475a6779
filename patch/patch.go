// Package patch applies RFC 6902 patches to decoded documents.
//
// Patching runs through the native-value bridge: the document is
// rendered to JSON, the patch operations are applied with
// evanphx/json-patch, and the result is converted back to an IR node.
// Patched documents therefore carry the bridge's vocabulary (no
// binary or extension leaves in the rewritten parts).
package patch

import (
	"bytes"
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/sibircevs/mpack/debug"
	"github.com/sibircevs/mpack/ir"
)

// Apply applies the RFC 6902 patch document (JSON bytes) to doc,
// returning the patched tree. doc is not modified.
func Apply(doc *ir.Node, patchDoc []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(ir.ToAny(doc))
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("patch %d ops on %d bytes\n", len(ops), len(docJSON))
	}
	out, err := ops.Apply(docJSON)
	if err != nil {
		return nil, err
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return ir.FromAny(v)
}
