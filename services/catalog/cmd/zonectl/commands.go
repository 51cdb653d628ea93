package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"github.com/spf13/cobra"

	"zonedemo/services/catalog"
)

// demoLineageEventID is the event fetched when zonectl runs without a sub-command.
const demoLineageEventID = "3jsqbte83xrjqa"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Demonstration client for the DataZone catalog and lineage APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runDemo,
	}

	cmd.AddCommand(newDemoCommand())
	cmd.AddCommand(newProjectsCommand())
	cmd.AddCommand(newAssetsCommand())
	cmd.AddCommand(newAssetTypesCommand())
	cmd.AddCommand(newLineageCommand())
	return cmd
}

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Fetch the demo lineage event",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
		event, err := svc.GetLineageEvent(ctx, demoLineageEventID)
		if err != nil {
			return nil, err
		}
		return newLineageView(event), nil
	})
}

func groupCommand(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
}

func newProjectsCommand() *cobra.Command {
	cmd := groupCommand("projects", "Project lookups")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects in the domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				out, err := svc.ListProjects(ctx)
				if err != nil {
					return nil, err
				}
				return out.Items, nil
			})
		},
	})

	var name string
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Resolve a project id by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				id, ok, err := svc.ProjectID(ctx, name)
				if err != nil {
					return nil, err
				}
				return map[string]any{"name": name, "id": id, "found": ok}, nil
			})
		},
	}
	idCmd.Flags().StringVar(&name, "name", "", "Project name (case-insensitive)")
	_ = idCmd.MarkFlagRequired("name")
	cmd.AddCommand(idCmd)

	return cmd
}

func newAssetsCommand() *cobra.Command {
	cmd := groupCommand("assets", "Asset operations")
	cmd.AddCommand(newAssetsGetCommand())
	cmd.AddCommand(newAssetsCreateCommand())
	cmd.AddCommand(newAssetsUpdateCommand())
	return cmd
}

func newAssetsGetCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch an asset by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.GetAsset(ctx, id)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Asset identifier")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAssetsCreateCommand() *cobra.Command {
	var (
		in        catalog.AssetInput
		formsFile string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forms, err := loadForms(formsFile)
			if err != nil {
				return err
			}
			in.Forms = forms
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.CreateAsset(ctx, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Asset name")
	cmd.Flags().StringVar(&in.AssetType, "type", "", "Asset type name")
	cmd.Flags().StringVar(&in.OwningProject, "project", "", "Owning project name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Asset description")
	cmd.Flags().StringSliceVar(&in.GlossaryTerms, "glossary-term", nil, "Glossary term identifier (repeatable)")
	cmd.Flags().StringVar(&formsFile, "forms", "", "YAML file with metadata form inputs")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newAssetsUpdateCommand() *cobra.Command {
	var name, id, desc, formsFile string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Create a new revision of an asset, replacing its description and forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forms, err := loadForms(formsFile)
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				return svc.UpdateAsset(ctx, name, id, desc, forms)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Asset name")
	cmd.Flags().StringVar(&id, "id", "", "Asset identifier")
	cmd.Flags().StringVar(&desc, "description", "", "Asset description; the revision replaces the current one")
	cmd.Flags().StringVar(&formsFile, "forms", "", "YAML file with metadata form inputs")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func loadForms(path string) ([]types.FormInput, error) {
	if path == "" {
		return nil, nil
	}
	return catalog.LoadForms(path)
}

func newAssetTypesCommand() *cobra.Command {
	cmd := groupCommand("asset-types", "Asset type lookups")

	var existsName string
	existsCmd := &cobra.Command{
		Use:   "exists",
		Short: "Report whether an asset type exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				ok, err := svc.AssetTypeExists(ctx, existsName)
				if err != nil {
					return nil, err
				}
				return map[string]any{"name": existsName, "exists": ok}, nil
			})
		},
	}
	existsCmd.Flags().StringVar(&existsName, "name", "", "Asset type name")
	_ = existsCmd.MarkFlagRequired("name")
	cmd.AddCommand(existsCmd)

	var idName string
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Resolve the identifier of an asset type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				id, err := svc.AssetTypeID(ctx, idName)
				if err != nil {
					return nil, err
				}
				return map[string]any{"name": idName, "id": id}, nil
			})
		},
	}
	idCmd.Flags().StringVar(&idName, "name", "", "Asset type name")
	_ = idCmd.MarkFlagRequired("name")
	cmd.AddCommand(idCmd)

	return cmd
}

func newLineageCommand() *cobra.Command {
	cmd := groupCommand("lineage", "Lineage event operations")

	var source, target string
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a COMPLETE lineage event from source to target asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				posted, err := svc.PostLineageEvent(ctx, source, target)
				if err != nil {
					return nil, err
				}
				return map[string]any{"event": posted.Event, "response": posted.Output}, nil
			})
		},
	}
	postCmd.Flags().StringVar(&source, "source", "", "Source asset id")
	postCmd.Flags().StringVar(&target, "target", "", "Target asset id")
	_ = postCmd.MarkFlagRequired("source")
	_ = postCmd.MarkFlagRequired("target")
	cmd.AddCommand(postCmd)

	var id string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch a lineage event by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *catalog.Service) (any, error) {
				event, err := svc.GetLineageEvent(ctx, id)
				if err != nil {
					return nil, err
				}
				return newLineageView(event), nil
			})
		},
	}
	getCmd.Flags().StringVar(&id, "id", "", "Lineage event id")
	_ = getCmd.MarkFlagRequired("id")
	cmd.AddCommand(getCmd)

	return cmd
}

type lineageView struct {
	*catalog.LineageEvent
	Event any `json:"event,omitempty"`
}

// newLineageView inlines the payload as JSON when it is valid JSON and as a
// string otherwise.
func newLineageView(e *catalog.LineageEvent) lineageView {
	view := lineageView{LineageEvent: e}
	switch {
	case len(e.Payload) == 0:
	case json.Valid(e.Payload):
		view.Event = json.RawMessage(e.Payload)
	default:
		view.Event = string(e.Payload)
	}
	return view
}
