// Package outline describes markup documents as YAML or JSON data and
// builds them with package markup.
//
// An outline names a dialect and lists the document's children:
//
//	dialect: html
//	newlines: true
//	children:
//	  - tag: table
//	    attrs:
//	      border: 1
//	    children:
//	      - tag: tr
//	        children:
//	          - {tag: td, text: column 1}
//	          - {tag: td, text: column 2}
//	  - tag: p
//	    text: "<b>trusted</b>"
//	    raw: true
//	  - plain text is a bare string
//
// Attributes keep the order they are written in. JSON input works as is,
// since every JSON document is valid YAML.
package outline
