package deployer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	apperrors "github.com/example/shipctl/pkg/errors"
	"github.com/example/shipctl/pkg/image"
	"github.com/example/shipctl/pkg/manifest"
	"github.com/example/shipctl/pkg/source"
)

type fakeLocator struct {
	path string
	err  error
}

func (f *fakeLocator) Locate(string) (string, error) {
	return f.path, f.err
}

type fakeAcquirer struct {
	opts source.Options
	err  error
}

func (f *fakeAcquirer) Fetch(_ context.Context, opts source.Options) error {
	f.opts = opts
	return f.err
}

type fakePublisher struct {
	ref   image.Reference
	creds image.Credentials
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, ref image.Reference, creds image.Credentials) error {
	f.ref = ref
	f.creds = creds
	return f.err
}

type fakeReconciler struct {
	pair       *manifest.Pair
	url        string
	versionErr error
	err        error
}

func (f *fakeReconciler) CheckToolVersion(context.Context) error {
	return f.versionErr
}

func (f *fakeReconciler) Reconcile(_ context.Context, pair *manifest.Pair) (string, error) {
	f.pair = pair
	return f.url, f.err
}

func testPipeline(rec *fakeReconciler) (*Pipeline, *fakeLocator, *fakeAcquirer, *fakePublisher) {
	locator := &fakeLocator{path: "/usr/local/bin/minikube"}
	acquirer := &fakeAcquirer{}
	publisher := &fakePublisher{}
	p := &Pipeline{
		Config: Config{
			RepoURL:          "https://github.com/someuser/demo.git",
			RegistryUser:     "someuser",
			RegistryPassword: "secret",
		},
		Locator:   locator,
		Acquirer:  acquirer,
		Publisher: publisher,
		NewReconciler: func(toolPath string) (ClusterReconciler, error) {
			return rec, nil
		},
	}
	return p, locator, acquirer, publisher
}

func TestRunAppliesDefaults(t *testing.T) {
	rec := &fakeReconciler{url: "http://192.168.49.2:30080"}
	p, _, acquirer, publisher := testPipeline(rec)

	res, err := p.Run(t.Context())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "my-appscript-7333", res.App)
	assert.Equal(t, "default", res.Namespace)
	assert.Equal(t, "someuser/my-appscript-7333:latest", res.Image)
	assert.Equal(t, "http://192.168.49.2:30080", res.URL)

	assert.Equal(t, "https://github.com/someuser/demo.git", acquirer.opts.URL)
	assert.NotEmpty(t, acquirer.opts.Dir)
	assert.Equal(t, "someuser", publisher.creds.Username)
	assert.Equal(t, "secret", publisher.creds.Password)

	require.NotNil(t, rec.pair)
	assert.Equal(t, "my-appscript-7333", rec.pair.Deployment.Name)
	assert.Equal(t, int32(8000), rec.pair.Deployment.Spec.Template.Spec.Containers[0].Ports[0].ContainerPort)
}

func TestRunStageOrder(t *testing.T) {
	rec := &fakeReconciler{url: "http://192.168.49.2:30080"}
	p, _, _, _ := testPipeline(rec)

	res, err := p.Run(t.Context())
	require.NoError(t, err)

	require.Len(t, res.Stages, 4)
	want := []string{StageLocateTool, StageFetchSource, StagePublishImage, StageReconcile}
	for i, stage := range res.Stages {
		assert.Equal(t, want[i], stage.Name)
		assert.Equal(t, StageSucceeded, stage.Status)
	}
}

func TestRunMissingRepoURL(t *testing.T) {
	p := &Pipeline{Config: Config{RegistryUser: "someuser"}}

	_, err := p.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestRunMissingRegistryUser(t *testing.T) {
	p := &Pipeline{Config: Config{RepoURL: "https://github.com/someuser/demo.git"}}

	_, err := p.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestRunLocateFailureSkipsRest(t *testing.T) {
	rec := &fakeReconciler{}
	p, locator, acquirer, _ := testPipeline(rec)
	locator.path = ""
	locator.err = apperrors.New(apperrors.ErrCodeToolNotFound, "minikube not found")

	res, err := p.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeToolNotFound, apperrors.CodeOf(err))

	require.Len(t, res.Stages, 4)
	assert.Equal(t, StageFailed, res.Stages[0].Status)
	assert.Equal(t, StageSkipped, res.Stages[1].Status)
	assert.Equal(t, StageSkipped, res.Stages[2].Status)
	assert.Equal(t, StageSkipped, res.Stages[3].Status)

	assert.Empty(t, acquirer.opts.URL, "fetch must not run after locate fails")
	assert.Nil(t, rec.pair, "reconcile must not run after locate fails")
}

func TestRunPublishFailure(t *testing.T) {
	rec := &fakeReconciler{}
	p, _, _, publisher := testPipeline(rec)
	publisher.err = apperrors.New(apperrors.ErrCodeUnauthorized, "registry login failed")

	res, err := p.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))

	require.Len(t, res.Stages, 4)
	assert.Equal(t, StageSucceeded, res.Stages[0].Status)
	assert.Equal(t, StageSucceeded, res.Stages[1].Status)
	assert.Equal(t, StageFailed, res.Stages[2].Status)
	assert.Equal(t, StageSkipped, res.Stages[3].Status)
	assert.Empty(t, res.URL)
	assert.Nil(t, rec.pair)
}

func TestRunVersionGateFailure(t *testing.T) {
	rec := &fakeReconciler{versionErr: apperrors.New(apperrors.ErrCodeUnavailable, "cluster tool too old")}
	p, _, _, _ := testPipeline(rec)

	res, err := p.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))

	require.Len(t, res.Stages, 4)
	assert.Equal(t, StageFailed, res.Stages[3].Status)
	assert.Empty(t, res.URL)
}

func TestRunRecordsImageOnReconcileFailure(t *testing.T) {
	rec := &fakeReconciler{err: apperrors.New(apperrors.ErrCodeCommandFailed, "start failed")}
	p, _, _, _ := testPipeline(rec)

	res, err := p.Run(t.Context())
	require.Error(t, err)

	// The image was pushed before the cluster stage failed.
	assert.Equal(t, "someuser/my-appscript-7333:latest", res.Image)
	assert.Empty(t, res.URL)
}

func TestDefaultReconcilerToleratesMissingContext(t *testing.T) {
	// A first-run kubeconfig has no entry for the target context yet. The
	// default wiring must still hand back a reconciler, leaving the client
	// build to the reconcile sequence after context repair.
	cfg := clientcmdapi.NewConfig()
	cfg.CurrentContext = "other"
	cfg.Contexts["other"] = clientcmdapi.NewContext()
	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, clientcmd.WriteToFile(*cfg, path))

	p := &Pipeline{Config: Config{Kubeconfig: path, Context: "minikube"}}
	rec, err := p.defaultReconciler("/usr/local/bin/minikube")
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
