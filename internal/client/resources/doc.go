// Package resources describes the four collections the admin client manages
// (articles, careers, projects, products) as crud.Resource implementations.
//
// Each file owns the wire shape of its resource and the mapping to and from
// the canonical models type, so that nullable fields, envelopes and naming
// differences never leave this package. The relation and edit policies are:
//
//	articles  categories [1,2] Truncate, full resend, multipart POST + _method=PUT
//	careers   no relations, diff against the original, JSON PUT
//	projects  product service and industry [1,1] Replace, full resend, multipart POST + _method=PUT
//	products  images up to 4 Reject, full resend (new images only), JSON POST
package resources
