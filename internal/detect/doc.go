// Package detect determines a file's semantic type from its leading bytes,
// falling back to the file extension when no signature matches.
//
// The signature table is fixed at construction and checked in priority order:
// container formats that embed more specific formats (ZIP-based office
// documents, ftyp-branded ISO media) are probed before their generic parents
// so a .zip that is really a .docx classifies as a document. Detection never
// returns an error; unreadable content degrades to the extension and an
// unrecognized extension degrades to unknown. The result carries provenance
// so downstream policy can distinguish an authoritative signature match from
// an extension guess.
package detect
