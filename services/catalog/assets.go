package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
)

// AssetInput describes an asset to create.
type AssetInput struct {
	Name string
	// Description defaults to "Test asset creation: <Name>".
	Description   string
	AssetType     string
	OwningProject string
	GlossaryTerms []string
	Forms         []types.FormInput
}

// GetAsset fetches an asset by id.
func (s *Service) GetAsset(ctx context.Context, assetID string) (*datazone.GetAssetOutput, error) {
	s.logger.Printf("INFO finding asset by id: %s", assetID)
	out, err := s.api.GetAsset(ctx, &datazone.GetAssetInput{
		DomainIdentifier: aws.String(s.domainID),
		Identifier:       aws.String(assetID),
	})
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", assetID, err)
	}
	s.logger.Printf("INFO GetAsset response: %s", describe(out))
	return out, nil
}

// AssetTypeID resolves the identifier CreateAsset expects for an asset type.
//
// DataZone addresses asset types by name, so the returned identifier is the
// name reported by GetAssetType rather than a separate id.
func (s *Service) AssetTypeID(ctx context.Context, assetType string) (string, error) {
	s.logger.Printf("INFO finding asset type: %s", assetType)
	out, err := s.getAssetType(ctx, assetType)
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return "", &NotFoundError{Kind: KindAssetType, Name: assetType, Err: err}
		}
		return "", fmt.Errorf("get asset type %s: %w", assetType, err)
	}
	name := aws.ToString(out.Name)
	if name == "" {
		return "", &NotFoundError{Kind: KindAssetType, Name: assetType}
	}
	return name, nil
}

// AssetTypeExists reports whether the asset type exists. Only a
// ResourceNotFoundException maps to false; other errors are returned.
func (s *Service) AssetTypeExists(ctx context.Context, assetType string) (bool, error) {
	s.logger.Printf("INFO checking if asset type exists: %s", assetType)
	_, err := s.getAssetType(ctx, assetType)
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) getAssetType(ctx context.Context, assetType string) (*datazone.GetAssetTypeOutput, error) {
	out, err := s.api.GetAssetType(ctx, &datazone.GetAssetTypeInput{
		DomainIdentifier: aws.String(s.domainID),
		Identifier:       aws.String(assetType),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("INFO GetAssetType response: %s", describe(out))
	return out, nil
}

// CreateAsset resolves the owning project and asset type, then creates the
// asset. Glossary terms are sent only when present.
func (s *Service) CreateAsset(ctx context.Context, in AssetInput) (*datazone.CreateAssetOutput, error) {
	projectID, ok, err := s.ProjectID(ctx, in.OwningProject)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Kind: KindProject, Name: in.OwningProject}
	}
	typeID, err := s.AssetTypeID(ctx, in.AssetType)
	if err != nil {
		return nil, err
	}

	req := &datazone.CreateAssetInput{
		DomainIdentifier:        aws.String(s.domainID),
		Name:                    aws.String(in.Name),
		OwningProjectIdentifier: aws.String(projectID),
		Description:             aws.String(description(in.Description, in.Name)),
		FormsInput:              in.Forms,
		TypeIdentifier:          aws.String(typeID),
	}
	if len(in.GlossaryTerms) > 0 {
		req.GlossaryTerms = in.GlossaryTerms
	}

	s.logger.Printf("INFO creating asset %s in project %s", in.Name, projectID)
	out, err := s.api.CreateAsset(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create asset %s: %w", in.Name, err)
	}
	s.logger.Printf("INFO CreateAsset response: %s", describe(out))
	return out, nil
}

// UpdateAsset creates a new revision of the asset. A revision replaces the
// name, description and forms wholesale: omitted forms are dropped and an empty
// desc is sent as "Test asset creation: <name>".
func (s *Service) UpdateAsset(ctx context.Context, name, assetID, desc string, forms []types.FormInput) (*datazone.CreateAssetRevisionOutput, error) {
	s.logger.Printf("INFO updating asset %s (%s)", name, assetID)
	out, err := s.api.CreateAssetRevision(ctx, &datazone.CreateAssetRevisionInput{
		DomainIdentifier: aws.String(s.domainID),
		Identifier:       aws.String(assetID),
		Name:             aws.String(name),
		Description:      aws.String(description(desc, name)),
		FormsInput:       forms,
	})
	if err != nil {
		return nil, fmt.Errorf("create asset revision %s: %w", assetID, err)
	}
	s.logger.Printf("INFO CreateAssetRevision response: %s", describe(out))
	return out, nil
}

func description(desc, name string) string {
	if desc != "" {
		return desc
	}
	return "Test asset creation: " + name
}
