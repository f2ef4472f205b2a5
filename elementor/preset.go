package elementor

// presetJSON is the built-in landing page wireframe: a hero container,
// an H1 section with an intro text block, and two H2 body sections.
const presetJSON = `[
  {
    "id": "a7c458d",
    "elType": "container",
    "settings": {
      "background_background": "classic",
      "background_position": "center center",
      "background_attachment": "fixed",
      "background_repeat": "no-repeat",
      "background_size": "cover",
      "padding": {"unit": "px", "top": "150", "right": "20", "bottom": "150", "left": "20", "isLinked": false}
    },
    "elements": [],
    "isInner": false
  },
  {
    "id": "7f206c2",
    "elType": "container",
    "settings": {
      "padding": {"unit": "px", "top": "50", "right": "0", "bottom": "0", "left": "0", "isLinked": false}
    },
    "elements": [
      {
        "id": "16d6f5f3",
        "elType": "container",
        "settings": {"content_width": "full"},
        "elements": [
          {
            "id": "766c9382",
            "elType": "widget",
            "settings": {"title": "Ajoutez votre titre ici (H1)", "header_size": "h1"},
            "elements": [],
            "isInner": false,
            "widgetType": "heading"
          },
          {
            "id": "7a4c811",
            "elType": "widget",
            "settings": {"editor": "<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit.</p>"},
            "elements": [],
            "isInner": false,
            "widgetType": "text-editor"
          }
        ],
        "isInner": true
      }
    ],
    "isInner": false
  },
  {
    "id": "15a1f314",
    "elType": "container",
    "settings": {
      "padding": {"unit": "px", "top": "30", "right": "0", "bottom": "0", "left": "0", "isLinked": false}
    },
    "elements": [
      {
        "id": "e1473e6",
        "elType": "container",
        "settings": {"content_width": "full"},
        "elements": [
          {
            "id": "2893e86c",
            "elType": "widget",
            "settings": {"title": "Ajoutez votre titre ici (H2)"},
            "elements": [],
            "isInner": false,
            "widgetType": "heading"
          },
          {
            "id": "286e48de",
            "elType": "widget",
            "settings": {"editor": "Lorem ipsum dolor sit amet, consectetur adipiscing elit."},
            "elements": [],
            "isInner": false,
            "widgetType": "text-editor"
          }
        ],
        "isInner": true
      }
    ],
    "isInner": false
  },
  {
    "id": "2ea43a4b",
    "elType": "container",
    "settings": {
      "padding": {"unit": "px", "top": "30", "right": "0", "bottom": "30", "left": "0", "isLinked": false}
    },
    "elements": [
      {
        "id": "42fa7b30",
        "elType": "container",
        "settings": {"content_width": "full"},
        "elements": [
          {
            "id": "48c111ab",
            "elType": "widget",
            "settings": {"title": "Ajoutez votre titre ici (H2)"},
            "elements": [],
            "isInner": false,
            "widgetType": "heading"
          },
          {
            "id": "3b4b49e6",
            "elType": "widget",
            "settings": {"editor": "Lorem ipsum dolor sit amet, consectetur adipiscing elit."},
            "elements": [],
            "isInner": false,
            "widgetType": "text-editor"
          }
        ],
        "isInner": true
      }
    ],
    "isInner": false
  }
]`

// Preset returns a fresh copy of the built-in landing page template.
// Each call decodes anew so callers may mutate the result freely.
func Preset() ([]*Node, error) {
	return ParseTemplate(presetJSON)
}
