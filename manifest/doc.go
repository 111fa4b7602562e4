/*
Package manifest loads alias bindings from YAML and applies them to a registry.

Classes are compiled into the program, so a manifest refers to them by name and a
Catalog maps those names back to *model.Class values:

	register:
	  - testmodels.Book
	  - testmodels.Author
	swap:
	  - testmodels.SpecialBook    # OverrideClass: alias comes from the class
	override:
	  comment: testmodels.Comment # Override: any entity, no swappable check

Apply runs the sections in that order. Overrides are applied in sorted alias order
so the result does not depend on map iteration. Reload flushes the registry first,
which is how a running process picks up an edited manifest.
*/
package manifest
