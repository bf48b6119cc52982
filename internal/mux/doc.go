// Package mux drives the MKV toolnix binaries: mkvmerge for the merge
// mode that remuxes inputs into MKV without transcoding, and mkvpropedit
// for applying subtitle track flags to finished outputs.
package mux
