package precheck

import (
	"strings"
	"testing"
)

const validMetadata = `{
  "name": "widget",
  "repo": "github.com/acme/widget",
  "version": "v1.0.0",
  "author": "Acme",
  "email": "ip@acme.example",
  "date": "2023-06-01",
  "type": "soft",
  "category": "comm",
  "status": "stable",
  "width": "0",
  "height": "0",
  "technology": "sky130",
  "tag": ["uart"],
  "cell_count": "900",
  "clk_freq": "50",
  "license": "Apache-2.0"
}`

func TestValidateMetadataValid(t *testing.T) {
	res, err := ValidateMetadata([]byte(validMetadata), "widget")
	if err != nil {
		t.Fatalf("ValidateMetadata: %v", err)
	}
	if !res.Valid {
		t.Errorf("issues = %+v", res.Issues)
	}
}

func TestValidateMetadataMissingField(t *testing.T) {
	doc := strings.Replace(validMetadata, `"license": "Apache-2.0"`, `"x": "y"`, 1)
	res, err := ValidateMetadata([]byte(doc), "widget")
	if err != nil {
		t.Fatalf("ValidateMetadata: %v", err)
	}
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue.Message, "license") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue names the missing field: %+v", res.Issues)
	}
}

func TestValidateMetadataNameMismatch(t *testing.T) {
	res, err := ValidateMetadata([]byte(validMetadata), "gadget")
	if err != nil {
		t.Fatalf("ValidateMetadata: %v", err)
	}
	if res.Valid {
		t.Fatal("expected invalid result for name mismatch")
	}
}

func TestValidateMetadataBadType(t *testing.T) {
	doc := strings.Replace(validMetadata, `"type": "soft"`, `"type": "firm"`, 1)
	res, err := ValidateMetadata([]byte(doc), "widget")
	if err != nil {
		t.Fatalf("ValidateMetadata: %v", err)
	}
	if res.Valid {
		t.Error("expected invalid result for unknown type")
	}
}
