// Package paramschema loads named param forms from descriptor documents.
//
// JSON and YAML documents declare forms under a "forms" key:
//
//	forms:
//	  dress:
//	    title: Платье
//	    params:
//	      - {id: 1, name: Назначение, type: string}
//	    values: {1: повседневное}
//
// HCL documents use one labelled block per form:
//
//	form "dress" {
//	  title = "Платье"
//	  param {
//	    id   = 1
//	    name = "Назначение"
//	  }
//	  values = { "1" = "повседневное" }
//	}
package paramschema
