package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
)

// ListProjects returns the first page of projects in the domain.
func (s *Service) ListProjects(ctx context.Context) (*datazone.ListProjectsOutput, error) {
	s.logger.Printf("INFO listing projects in domain %s", s.domainID)
	out, err := s.api.ListProjects(ctx, &datazone.ListProjectsInput{
		DomainIdentifier: aws.String(s.domainID),
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	s.logger.Printf("INFO ListProjects response: %s", describe(out))
	return out, nil
}

// ProjectID resolves a project name, case-insensitively, to its id. ok is
// false when no project carries that name.
func (s *Service) ProjectID(ctx context.Context, name string) (id string, ok bool, err error) {
	s.logger.Printf("INFO resolving project id: %s", name)
	out, err := s.ListProjects(ctx)
	if err != nil {
		return "", false, err
	}
	for _, p := range out.Items {
		if strings.EqualFold(aws.ToString(p.Name), name) {
			return aws.ToString(p.Id), true, nil
		}
	}
	return "", false, nil
}
