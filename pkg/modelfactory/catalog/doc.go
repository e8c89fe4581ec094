/*
Package catalog loads modelfactory templates from YAML or JSON files.

# File Format

A catalog maps template names to attribute mappings:

	User:
	  name: Alice
	  tags: [admin]
	  nickname: !optional
	  email: !required
	  id: !sequence 1
	  handle: !sequence "user%d"
	  token: !uuid
	  created_at: !now
	  settings: !frozen {theme: dark}

	Team:
	  size: 3

JSON catalogs use the same shape without tags; every value is a Default.

# Loading

	reg := modelfactory.NewRegistry()
	if err := catalog.Load(reg, "testdata/factories.yaml"); err != nil {
	    t.Fatal(err)
	}

LoadDefault looks for testdata/model_factories.{yaml,yml,json} under a
directory and quietly does nothing when none exists, which lets a test
package keep its templates next to its fixtures by convention.
*/
package catalog
