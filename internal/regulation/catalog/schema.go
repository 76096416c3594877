package catalog

// catalogSchema is the structural contract for catalog documents. Condition
// shapes are deliberately closed (additionalProperties: false, flat value
// types only) so nested expression trees are rejected until the condition
// language officially grows them.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "regulations", "questionnaire"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "regulations": {
      "type": "array",
      "items": {"$ref": "#/definitions/regulation"}
    },
    "complianceChecks": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"type": "string"}
      }
    },
    "questionnaire": {
      "type": "array",
      "items": {"$ref": "#/definitions/layer"}
    }
  },
  "definitions": {
    "condition": {
      "type": "object",
      "required": ["field", "operator"],
      "additionalProperties": false,
      "properties": {
        "field": {"type": "string", "minLength": 1},
        "operator": {"enum": ["eq", "in", "gt", "exists", "true", "includes"]},
        "value": {
          "oneOf": [
            {"type": "string"},
            {"type": "number"},
            {"type": "boolean"},
            {"type": "array", "items": {"type": "string"}}
          ]
        }
      }
    },
    "regulation": {
      "type": "object",
      "required": ["id", "name", "jurisdiction", "category", "riskLevel", "summary"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "officialReference": {"type": "string"},
        "jurisdiction": {"enum": ["eu", "federal", "state", "industry"]},
        "category": {"enum": ["datenschutz", "arbeitsschutz", "steuern", "gewerbe", "umwelt", "produktsicherheit", "online"]},
        "riskLevel": {"enum": ["high", "medium", "low"]},
        "summary": {"type": "string"},
        "keyRequirements": {"type": "array", "items": {"type": "string"}},
        "potentialPenalty": {"type": "string"},
        "sourceUrl": {"type": "string"},
        "appliesWhen": {"type": "array", "items": {"$ref": "#/definitions/condition"}},
        "explanationTemplate": {"type": "string"}
      }
    },
    "layer": {
      "type": "object",
      "required": ["id", "title", "fields"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "fields": {
          "type": "array",
          "items": {"$ref": "#/definitions/field"}
        }
      }
    },
    "field": {
      "type": "object",
      "required": ["id", "label", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "label": {"type": "string"},
        "type": {"enum": ["text", "date", "single-select", "multi-select", "toggle"]},
        "required": {"type": "boolean"},
        "options": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["value"],
            "properties": {
              "value": {"type": "string"},
              "label": {"type": "string"}
            }
          }
        },
        "showWhen": {"$ref": "#/definitions/condition"},
        "complianceCheck": {"type": "boolean"}
      }
    }
  }
}`
