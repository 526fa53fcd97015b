package schema

// JSON Schema definitions for the documents the write path produces. They
// are validated before any mutation is sent so a bad admin submission
// never reaches the content service.

const postSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "_type": {"const": "post"},
    "title": {"type": "string", "minLength": 1},
    "subtitle": {"type": "string", "minLength": 1},
    "slug": {
      "type": "object",
      "properties": {
        "_type": {"const": "slug"},
        "current": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"}
      },
      "required": ["current"]
    },
    "author": {"$ref": "#/$defs/reference"},
    "category": {"$ref": "#/$defs/reference"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "publishedAt": {"type": "string", "minLength": 1},
    "featured": {"type": "boolean"},
    "emoji": {"type": "string"},
    "thumbGradStart": {"$ref": "#/$defs/hexColor"},
    "thumbGradEnd": {"$ref": "#/$defs/hexColor"},
    "body": {"type": "array"},
    "coverImage": {"type": "object"}
  },
  "required": ["_type", "title", "subtitle", "slug", "author", "category", "body"],
  "$defs": {
    "reference": {
      "type": "object",
      "properties": {
        "_type": {"const": "reference"},
        "_ref": {"type": "string", "minLength": 1}
      },
      "required": ["_type", "_ref"]
    },
    "hexColor": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
  }
}`

const authorSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "_type": {"const": "author"},
    "name": {"type": "string", "minLength": 1},
    "slug": {
      "type": "object",
      "properties": {
        "_type": {"const": "slug"},
        "current": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"}
      },
      "required": ["current"]
    },
    "role": {"type": "string"},
    "avatarEmoji": {"type": "string"},
    "bio": {"type": "string"},
    "photo": {"type": "object"}
  },
  "required": ["_type", "name", "slug"]
}`

const categorySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "_type": {"const": "category"},
    "title": {"type": "string", "minLength": 1},
    "slug": {
      "type": "object",
      "properties": {
        "_type": {"const": "slug"},
        "current": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"}
      },
      "required": ["current"]
    },
    "color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
  },
  "required": ["_type", "title", "slug"]
}`
