// Package stream provides structural event-based encoding and
// decoding of MessagePack streams.
//
// The stream package is for callers that cannot or do not want to
// hold a whole value tree in memory: the decoder yields one
// structural event per wire element, and the encoder accepts values
// one at a time with explicit container management. For general
// decoding and encoding with value trees, use the decode and encode
// packages instead.
//
// # Example: Encoding
//
//	enc := stream.NewEncoder(writer)
//	enc.BeginMap(1)
//	enc.WriteString("name")
//	enc.WriteString("value")
//	enc.EndMap()
//
// # Example: Decoding
//
//	dec := stream.NewDecoder(reader)
//	for {
//	    ev, err := dec.ReadEvent()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // ev.Type is BeginMap, String, Int, EndMap, ...
//	}
//
// Container lengths are declared up front because the wire format is
// length-prefixed; the encoder validates that exactly the declared
// number of values is written, and the decoder synthesizes EndArray
// and EndMap events when a container's declared count has been
// consumed.
package stream
