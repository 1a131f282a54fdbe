// Package query builds the SPARQL text sent to the Wikidata endpoint.
//
// Every user-supplied term passes through Escape before it is embedded in a
// quoted literal. Organ queries are static and never take user input.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/protscope/core/internal/models"
)

// ErrEmptyTerm rejects a blank search before any network call is made.
var ErrEmptyTerm = errors.New("search term is empty")

// Row caps per query shape.
const (
	LimitByName     = 200
	LimitByCrossRef = 50
	LimitByCategory = 200
	LimitDefault    = 1000
	LimitOrgan      = 1000
)

// Wikidata identifiers the queries are anchored on.
const (
	ClassProtein      = "wd:Q8054"
	TaxonHuman        = "wd:Q15978631"
	PropInstanceOf    = "wdt:P31"
	PropFoundInTaxon  = "wdt:P703"
	PropUniProtID     = "wdt:P352"
	PropBioProcess    = "wdt:P682"
	PropPartOf        = "wdt:P927"
	AnatomyBrain      = "wd:Q1073"
	AnatomyHeart      = "wd:Q1072"
	labelServiceBlock = `SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }`
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", " ",
	"\r", " ",
)

// Escape makes s safe to place between double quotes in a SPARQL literal.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// Build returns the query for a submitted search.
func Build(sc models.SearchContext) (string, error) {
	raw := strings.TrimSpace(sc.Term)
	if raw == "" {
		return "", ErrEmptyTerm
	}
	term := Escape(raw)

	switch sc.Mode {
	case models.ModeEntityName:
		return byName(term), nil
	case models.ModeCrossRefID:
		return byCrossRef(term), nil
	case models.ModeCategory:
		return byCategory(term), nil
	default:
		return "", fmt.Errorf("unsupported search mode %v", sc.Mode)
	}
}

// Default selects every human protein with its UniProt id and process.
func Default() string {
	return fmt.Sprintf(`SELECT ?item ?uniprotid ?biological_process ?biological_processLabel ?itemLabel WHERE {
  ?item %s ?uniprotid;
        %s %s.
  %s
  OPTIONAL { ?item %s ?biological_process. }
  ?item %s %s.
}
LIMIT %d`, PropUniProtID, PropFoundInTaxon, TaxonHuman, labelServiceBlock, PropBioProcess, PropInstanceOf, ClassProtein, LimitDefault)
}

// Organ selects human proteins whose biological process is, transitively,
// part of the given anatomical entity.
func Organ(anatomy string) string {
	return fmt.Sprintf(`SELECT ?protein ?proteinLabel ?uniprotID ?biologicalProcess ?biologicalProcessLabel WHERE {
  ?protein %s %s;
           %s %s;
           %s ?uniprotID;
           %s ?biologicalProcess.
  ?biologicalProcess (%s*) %s.
  %s
}
LIMIT %d`, PropInstanceOf, ClassProtein, PropFoundInTaxon, TaxonHuman, PropUniProtID, PropBioProcess, PropPartOf, anatomy, labelServiceBlock, LimitOrgan)
}

func byName(term string) string {
	return fmt.Sprintf(`SELECT ?item ?uniprotid ?biological_process ?biological_processLabel ?itemLabel WHERE {
  ?item %s %s;
        %s %s.
  OPTIONAL { ?item %s ?uniprotid. }
  OPTIONAL { ?item %s ?biological_process. }
  ?item rdfs:label ?itemLabel .
  FILTER(LANG(?itemLabel) = "en")
  FILTER(CONTAINS(LCASE(STR(?itemLabel)), LCASE("%s")))
  OPTIONAL {
    ?biological_process rdfs:label ?biological_processLabel .
    FILTER(LANG(?biological_processLabel) = "en")
  }
}
LIMIT %d`, PropInstanceOf, ClassProtein, PropFoundInTaxon, TaxonHuman, PropUniProtID, PropBioProcess, term, LimitByName)
}

func byCrossRef(term string) string {
	return fmt.Sprintf(`SELECT ?item ?uniprotid ?biological_process ?biological_processLabel ?itemLabel WHERE {
  ?item %s "%s";
        %s %s.
  OPTIONAL { ?item %s ?uniprotid. }
  OPTIONAL { ?item %s ?biological_process. }
  %s
}
LIMIT %d`, PropUniProtID, term, PropFoundInTaxon, TaxonHuman, PropUniProtID, PropBioProcess, labelServiceBlock, LimitByCrossRef)
}

func byCategory(term string) string {
	return fmt.Sprintf(`SELECT ?item ?uniprotid ?biological_process ?biological_processLabel ?itemLabel WHERE {
  ?item %s %s;
        %s %s;
        %s ?biological_process.
  OPTIONAL { ?item %s ?uniprotid. }
  ?biological_process rdfs:label ?biological_processLabel .
  FILTER(LANG(?biological_processLabel) = "en")
  FILTER(CONTAINS(LCASE(STR(?biological_processLabel)), LCASE("%s")))
  %s
}
LIMIT %d`, PropInstanceOf, ClassProtein, PropFoundInTaxon, TaxonHuman, PropBioProcess, PropUniProtID, term, labelServiceBlock, LimitByCategory)
}
