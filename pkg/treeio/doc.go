// Package treeio reads and writes tree documents.
//
// A tree document is a nested object with a value, an optional style
// descriptor and optional children. The same shape is accepted as JSON,
// TOML and YAML:
//
//	{
//	  "value": "-",
//	  "style": "red@6",
//	  "children": [
//	    {"value": 1},
//	    {"value": "*", "style": "rgb(122,17,234)@7", "children": [
//	      {"value": 5}, {"value": 4}
//	    ]}
//	  ]
//	}
//
// A node without a style gets the default style (blue@12). An invalid style
// fails with INVALID_STYLE naming the node's path, e.g. "root.children[1]".
//
// File helpers pick the format from the extension (.json, .toml, .yaml,
// .yml); anything else fails with INVALID_FORMAT.
//
// Documents are plain trees: a node shared by several parents is written
// once per occurrence and reads back as independent copies.
//
// [MarshalLayout] exports a computed layout (positions and radii) as JSON
// for consumers that draw the tree themselves.
package treeio
