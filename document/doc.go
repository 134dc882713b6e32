// Package document serializes rig scenes as flat object graphs.
//
// A graph maps scoped ids of the form "Model#id" to plain records and names
// one root object, the Scene. References between entities are stored as
// scoped ids, so every entity appears exactly once however many times it is
// referenced. Model names and field names match the documents written by the
// Drag Animate editor, so its saved scenes load unchanged.
//
// Graphs are written and read as JSON or YAML:
//
//	if err := document.Save("scene.yaml", scene); err != nil {
//	    return err
//	}
//	scene, err := document.Load("scene.yaml")
package document
