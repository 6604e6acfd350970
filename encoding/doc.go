// Package encoding holds the per-variable encoding configuration of a
// container: the quantization setting and the ordered filter pipeline.
//
// A State is only mutable while its Gate reports that the owning container is
// in the definition phase and is an enhanced format container. Every mutator
// validates the request completely before touching the state, so a rejected
// call leaves the previous configuration observable unchanged.
//
// Persistence goes through a Bridge. RecordStore is the in-memory Bridge the
// container uses: Commit snapshots a State as a section.EncodingRecord and Load
// rebuilds an equal State from it.
//
//	st := encoding.NewState()
//	if err := st.SetQuantize(gate, format.Float, format.QuantizeBitGroom, 3); err != nil {
//	    return err
//	}
//	if err := st.AddFilter(gate, filter.Spec{ID: format.FilterDeflate, Params: []uint32{6}}); err != nil {
//	    return err
//	}
package encoding
