// Package project owns construction projects and their drawing files. A
// project belongs to one company; drawings are PDF or DWG uploads stored in
// the blob store with the metadata row pointing at them. Creating projects is
// gated on the company's subscription being live.
package project
