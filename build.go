package main

import (
	"fmt"
	"path/filepath"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ecr"
	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type EcrImage struct {
	repo  *ecr.Repository
	image *docker.Image
}

type EcrDockerBuildArgs struct {
	// source is the handler package directory; it holds the Dockerfile and
	// its content hash tags the image.
	source string
}

func NewEcrDockerBuild(ctx *pulumi.Context, args EcrDockerBuildArgs) (*EcrImage, error) {
	ecrImage := &EcrImage{}

	tag, err := hashDirectory(args.source)
	if err != nil {
		return nil, fmt.Errorf("Error hashing %s: %w", args.source, err)
	}

	ecrImage.repo, err = ecr.NewRepository(ctx, "registry", &ecr.RepositoryArgs{
		ForceDelete: pulumi.BoolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating repo: %w", err)
	}
	authToken := ecr.GetAuthorizationTokenOutput(ctx, ecr.GetAuthorizationTokenOutputArgs{
		RegistryId: ecrImage.repo.RegistryId,
	})
	ecrImage.image, err = docker.NewImage(ctx, "handler-image", &docker.ImageArgs{
		Registry: docker.RegistryArgs{
			Server:   ecrImage.repo.RepositoryUrl,
			Username: authToken.UserName(),
			Password: pulumi.ToSecret(authToken.ApplyT(func(authToken ecr.GetAuthorizationTokenResult) (*string, error) {
				return &authToken.Password, nil
			})).(pulumi.StringPtrOutput),
		},
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/arm64"),
			Context:    pulumi.String("."),
			Dockerfile: pulumi.String(filepath.Join(args.source, "Dockerfile")),
		},
		ImageName: ecrImage.repo.RepositoryUrl.ApplyT(func(url string) string {
			return fmt.Sprintf("%s:%s", url, tag[:12])
		}).(pulumi.StringOutput),
	})
	if err != nil {
		return nil, fmt.Errorf("Error building image: %w", err)
	}

	return ecrImage, nil
}
