// ABOUTME: Network heatmap generation with graphviz
// ABOUTME: Contacts are colored by warmth and linked to target companies
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// GenerateNetworkHeatmap renders the whole network: company nodes, contact
// nodes colored by warmth, solid edges for employment links, and dashed
// edges for connector influence.
func (g *GraphGenerator) GenerateNetworkHeatmap() (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLabel("Network Heatmap")
	graph.SetRankDir(cgraph.LRRank)

	contacts, err := db.ListContacts(g.db, false)
	if err != nil {
		return "", fmt.Errorf("failed to fetch contacts: %w", err)
	}
	companies, err := db.ListCompanies(g.db, false)
	if err != nil {
		return "", fmt.Errorf("failed to fetch companies: %w", err)
	}

	companyNodes := make(map[uuid.UUID]*cgraph.Node, len(companies))
	companyByName := make(map[string]uuid.UUID, len(companies))
	for _, company := range companies {
		node, err := graph.CreateNodeByName(fmt.Sprintf("company_%s", company.ID.String()[:8]))
		if err != nil {
			return "", fmt.Errorf("failed to create company node: %w", err)
		}
		node.SetLabel(company.Name)
		node.SetStyle("filled")
		node.SetFillColor("lightblue")
		companyNodes[company.ID] = node
		companyByName[strings.ToLower(strings.TrimSpace(company.Name))] = company.ID
	}

	for _, contact := range contacts {
		node, err := graph.CreateNodeByName(fmt.Sprintf("contact_%s", contact.ID.String()[:8]))
		if err != nil {
			return "", fmt.Errorf("failed to create contact node: %w", err)
		}
		node.SetLabel(contact.Name)
		node.SetStyle("filled")
		node.SetFillColor(warmthColor(contact.WarmthLevel))

		// Employment edge, by id first, name fallback
		if target, ok := contactCompany(contact, companyByName); ok {
			if companyNode, ok := companyNodes[target]; ok {
				edge, err := graph.CreateEdgeByName("", node, companyNode)
				if err == nil && contact.Role != "" {
					edge.SetLabel(contact.Role)
				}
			}
		}

		// Influence edges for connectors
		for _, influenceID := range contact.InfluenceCompanyIDs() {
			companyNode, ok := companyNodes[influenceID]
			if !ok {
				continue
			}
			edge, err := graph.CreateEdgeByName("", node, companyNode)
			if err != nil {
				continue
			}
			edge.SetStyle("dashed")
			edge.SetLabel("influence")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func warmthColor(w models.Warmth) string {
	switch w {
	case models.WarmthWarm:
		return "palegreen"
	case models.WarmthCooling:
		return "gold"
	default:
		return "lightcoral"
	}
}

func contactCompany(contact models.Contact, byName map[string]uuid.UUID) (uuid.UUID, bool) {
	if contact.CompanyID != nil {
		return *contact.CompanyID, true
	}
	if contact.Company == "" {
		return uuid.Nil, false
	}
	id, ok := byName[strings.ToLower(strings.TrimSpace(contact.Company))]
	return id, ok
}
