// Package catalog loads component catalogs: YAML documents that declare the
// components a model may use, the JSON Schema of their props, and usage examples.
//
// # Format
//
//	name: dashboard
//	components:
//	  - name: Badge
//	    description: A small colored label.
//	    props:
//	      type: object
//	      properties:
//	        color: {type: string, enum: [red, green, blue]}
//	      required: [color]
//	    examples:
//	      - component: Badge
//	        props: {color: red}
//	        text: New
//	  - name: Card
//	    examples:
//	      - component: Card
//	        children:
//	          - text: "Status: "
//	          - component: Badge
//	            props: {color: green}
//	            text: OK
//
// Catalogs are validated on load. Example props must be literal scalars and must
// match their component's props schema.
//
// # Usage
//
//	cat, err := catalog.Load("components.yaml")
//	if err != nil {
//	    return err
//	}
//	reg := cat.Registry(map[string]any{"Badge": badgeRenderer})
//	system := catalog.Prompt(cat)
package catalog
