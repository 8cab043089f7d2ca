// Package script reads patch scripts: YAML or JSON documents that describe
// successive states of an ordered node list.
//
//	name: greeting
//	steps:
//	  - name: mount
//	    nodes:
//	      - text: Hello World!
//	      - element: div
//	  - name: reorder
//	    nodes:
//	      - element: div
//	        attrs: {class: box}
//	        children:
//	          - inner
//	      - list:
//	          - text: Hello World!
//	      - key: q
//	        text: How are you?
//
// Each node sets exactly one of text, element or list. A bare string is a
// text node. Keys are carried into the built tree but do not affect how
// steps are reconciled.
//
// Run renders the steps into a mount one after another, so every step is
// patched against the one before it.
package script
