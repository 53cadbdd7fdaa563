package schema

// AnalysisSchema is the JSON Schema (Draft 2020-12) for persisted analysis
// files. It documents the wire format written by the persistence layer.
const AnalysisSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/huangsam/fmtgauge/analysis.schema.json",
  "title": "fmtgauge Analysis",
  "description": "One complete formatting run over a set of projects",
  "type": "object",
  "required": ["projects", "results", "metadata"],
  "properties": {
    "projects": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/Project" }
    },
    "results": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": { "$ref": "#/$defs/FileResult" }
      }
    },
    "metadata": {
      "type": "object",
      "required": ["formatter-version", "created-at", "data-format"],
      "properties": {
        "formatter-version": { "type": "string" },
        "formatter-extra-args": {
          "type": "array",
          "items": { "type": "string" }
        },
        "created-at": { "type": "string" },
        "data-format": { "type": "number" }
      }
    }
  },
  "$defs": {
    "Project": {
      "type": "object",
      "required": ["name", "url", "custom_arguments"],
      "properties": {
        "name": { "type": "string" },
        "url": { "type": "string" },
        "custom_arguments": {
          "type": "array",
          "items": { "type": "string" }
        },
        "go_requires": { "type": "string" },
        "commit": { "type": "string" }
      }
    },
    "FileResult": {
      "type": "object",
      "required": ["type", "src"],
      "properties": {
        "type": {
          "type": "string",
          "enum": ["nothing-changed", "reformatted", "failed"]
        },
        "src": { "type": "string" },
        "dst": { "type": "string" },
        "error": { "type": "string" },
        "message": { "type": "string" },
        "log": { "type": "string" }
      },
      "allOf": [
        {
          "if": { "properties": { "type": { "const": "reformatted" } } },
          "then": { "required": ["dst"] }
        },
        {
          "if": { "properties": { "type": { "const": "failed" } } },
          "then": { "required": ["error", "message"] }
        }
      ]
    }
  }
}`
