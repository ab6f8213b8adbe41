// Package rulesfile reads and writes the questionnaire documents.
//
// rules.json describes the rule tree:
//
//	{
//	  // comments are allowed
//	  "rules": [
//	    {"type": "DEFINED", "id": "pack", "caption": "@pack",
//	     "options": [
//	       {"id": "vanilla", "caption": "@pack.vanilla"},
//	       {"id": "modded", "caption": "@pack.modded", "disabled": true,
//	        "rules": [{"type": "GENERATED", "id": "mods",
//	                   "directories": ["mods"], "defaults": ["optifine"]}]}
//	     ]},
//	    {"type": "NESTED", "id": "extras", "canDisable": true, "rules": [...]}
//	  ]
//	}
//
// choices.json records the user's answers, shaped after the rule tree:
//
//	{
//	  "choices": {
//	    "pack": {"choice": "modded", "choices": {"mods": {"choices": ["optifine"], "disabled": false}}, "disabled": false},
//	    "extras": {"choices": {}, "disabled": true}
//	  },
//	  "disabled": false
//	}
//
// Choices are decoded against the rule tree. Entries that do not fit the
// tree are dropped with a warning so the rule's default applies.
package rulesfile
