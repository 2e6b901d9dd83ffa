package quantize

// ResolveOverlaps removes entries that share a boundary with their
// predecessor. On a shared start the earlier entry is dropped, on a shared end
// the later one. Zero-length entries are skipped over for comparison and left
// for DropDegenerate.
func ResolveOverlaps(seq Sequence) Sequence {
	out := make(Sequence, 0, len(seq))
	// index in out of the last entry with a non-zero duration
	prev := func() int {
		for j := len(out) - 1; j >= 0; j-- {
			if out[j].Start != out[j].End {
				return j
			}
		}
		return -1
	}
next:
	for _, s := range seq {
		if s.Start == s.End {
			out = append(out, s)
			continue
		}
		for j := prev(); j >= 0; j = prev() {
			switch {
			case out[j].Start == s.Start:
				out = append(out[:j], out[j+1:]...)
			case out[j].End == s.End:
				continue next
			default:
				out = append(out, s)
				continue next
			}
		}
		out = append(out, s)
	}
	return out
}

// DropDegenerate removes zero-length segments.
func DropDegenerate(seq Sequence) Sequence {
	out := make(Sequence, 0, len(seq))
	for _, s := range seq {
		if s.Start != s.End {
			out = append(out, s)
		}
	}
	return out
}

// Cleanup runs ResolveOverlaps then DropDegenerate.
func Cleanup(seq Sequence) Sequence {
	return DropDegenerate(ResolveOverlaps(seq))
}
