package quantize

// RestTrackOf returns the silence before each segment, the first one measured
// from time 0.
func RestTrackOf(seq Sequence) RestTrack {
	rests := make(RestTrack, len(seq))
	for i, s := range seq {
		if i == 0 {
			rests[i] = s.Start
			continue
		}
		rests[i] = s.Start - seq[i-1].End
	}
	return rests
}

// NoteTrackOf removes the silences between segments: each segment is moved
// back to start where the previous one ends. The first segment keeps its
// start and every duration is kept.
func NoteTrackOf(seq Sequence) NoteTrack {
	notes := make(NoteTrack, len(seq))
	for i, s := range seq {
		if i > 0 {
			d := s.Duration()
			s.Start = notes[i-1].End
			s.End = s.Start + d
		}
		notes[i] = s
	}
	return notes
}

// pack lays notes out back to back from origin, giving note i the duration
// durations[i] preceded by rests[i]. Missing rests count as silence-free.
func pack(notes NoteTrack, durations []float64, rests RestTrack, origin float64) NoteTrack {
	out := make(NoteTrack, len(notes))
	at := origin
	for i, n := range notes {
		if i < len(rests) {
			at += rests[i]
		}
		out[i] = Segment{Start: at, End: at + durations[i], Pitch: n.Pitch}
		at = out[i].End
	}
	return out
}

// Recompose puts the rests back in front of the notes, laying the track out
// from time 0: note i starts after rests[0..i] and the notes before it.
func Recompose(notes NoteTrack, rests RestTrack) Sequence {
	return Sequence(pack(notes, notes.Durations(), rests, 0))
}
