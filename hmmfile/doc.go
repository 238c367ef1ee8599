// Package hmmfile reads and writes models and observation sequences.
//
// Three model formats are supported, chosen by file extension:
//
//	.hmm        the plain text format described below
//	.yaml .yml  a YAML mapping of hmmlib.Params
//	.gob.gz     gzip-compressed gob, see hmmlib.ReadHMM
//
// A text model file looks like
//
//	2 2 5
//	Rainy Sunny
//	Walk Shop
//	a:
//	0.7 0.3
//	0.4 0.6
//	b:
//	0.1 0.9
//	0.6 0.4
//	pi:
//	0.6 0.4
//
// where the first line gives the number of states, the number of symbols
// and the nominal number of time steps.  An observation file gives the
// number of sequences, then for each sequence a line with its length and a
// line with its symbols.
package hmmfile
