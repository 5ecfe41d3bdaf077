// 01   Mar.  3, 2024   Initial version
// 02   May  18, 2024   Dual transformation and serializer added

/*
Package mps provides a suite of Go language tools for reading, normalizing,
and transforming Linear Programming (LP) models stored in the classic
fixed-format MPS file format. It is intended for two sets of users:
(i) researchers who need NETLIB-style MPS files loaded into a typed,
predictable in-memory model, and (ii) users who want to generate the LP dual
of such a model and write it back out as MPS text for consumption by a
solver.

Some of the main functions include:
	- ability to read model files in MPS format, or create models directly
	- conforming a model (filling in the defaults the format leaves implicit)
	- transforming a model into its LP dual
	- writing a model (primal or dual) back out as fixed-format MPS text
	- summarizing and JSON-serializing a parsed model

Reading and Conforming

ReadMpsFile and ParseMps consume the sections NAME, ROWS, COLUMNS, RHS,
BOUNDS, RANGES, and ENDATA. Comment lines start with '*'. Only the first
RHS, BOUNDS, and RANGES vector encountered is honored; records belonging to
later vectors are skipped and reported through the package logger. After the
sections are read, the conforming pass validates the model and, when
Options.Fill is set, fills in the format-implicit defaults: missing bounds
become 0 <= x <= +Inf (with the NETLIB exception that a sole upper bound
of at most 0 implies a lower bound of -Inf), missing RHS entries become 0,
and the coefficient matrix is filled out densely with zeros.

Generating the Dual

MakeDual converts a conformed model into its LP dual. Variables are first
reformulated into standard canonical form (x >= 0): fixed variables are
eliminated into the RHS, shifted variables accumulate an objective offset,
and two-sided bounds introduce an auxiliary constraint row. The dual carries
an explicit optimization sense and announces its objective row through the
OBJSENSE and OBJNAME sections when serialized. Models with RANGES are
rejected.

Writing Model Files

WriteMpsFile renders any model, primal or dual, using the fixed character
offsets of the classic MPS column layout, so the output can be fed to other
MPS consumers byte-for-byte. WriteJSONFile emits the same model as a JSON
document in which infinite bounds appear as the sentinels "+inf" and "-inf".

Tutorial and Function Exerciser

The executable provided with the package (mpsrun) exposes the library on the
command line: it parses a file, optionally conforms and summarizes it, and
writes either the JSON form or the MPS text of the dual.
*/
package mps
