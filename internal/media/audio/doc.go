// Package audio classifies the audio tracks of an input file ahead of
// command rewriting. A track is marked immersive only when its codec
// signature belongs to a joint-object-coding family and the stream carries
// an embedded object-audio metadata indicator; channel count alone never
// qualifies, so ordinary 7.1 tracks are not false positives.
package audio
