package pod_test

import (
	"testing"

	"github.com/flowkit/flowkit/pkg/tasks"
	"github.com/flowkit/flowkit/pkg/utils/try"
	"github.com/flowkit/flowkit/pkg/workloads/pod"
)

func TestRender(t *testing.T) {
	t.Run("a minimal definition renders on the default image", func(t *testing.T) {
		def := try.To(tasks.ParseDefinition(
			[]byte(`{name: hello, command: [echo, hello]}`),
		)).OrFatal(t)

		rendered := try.To(pod.Render(def, settingsUnderTest())).OrFatal(t)

		if rendered.Container.Image != "registry.example.com/flow/runtime:v1" {
			t.Errorf("wrong image: %s", rendered.Container.Image)
		}

		primary := containerNamed(t, rendered.PodSpec, tasks.DefaultPrimaryContainerName)
		if primary["image"] != "registry.example.com/flow/runtime:v1" {
			t.Errorf("wrong rendered image: %v", primary["image"])
		}
	})

	t.Run("definition env overrides settings env on collision", func(t *testing.T) {
		settings := settingsUnderTest()
		settings.Env = map[string]string{"LOG_LEVEL": "info", "REGION": "eu"}

		def := try.To(tasks.ParseDefinition([]byte(`
name: custom-env
command: [run]
env:
  LOG_LEVEL: debug
`))).OrFatal(t)

		rendered := try.To(pod.Render(def, settings)).OrFatal(t)

		if rendered.Container.Env["LOG_LEVEL"] != "debug" {
			t.Errorf("definition env should win: %v", rendered.Container.Env)
		}
		if rendered.Container.Env["REGION"] != "eu" {
			t.Errorf("settings env should apply: %v", rendered.Container.Env)
		}
	})

	t.Run("a pod template flows into the rendered pod spec", func(t *testing.T) {
		def := try.To(tasks.ParseDefinition([]byte(`
name: with-template
image: "{{.image.sidecar.fqn}}:{{.image.sidecar.version}}"
command: [run]
podTemplate:
  primaryContainerName: work
  labels: {team: ml}
  spec:
    containers:
      - name: work
      - name: logger
        image: registry.example.com/flow/logger:v1
`))).OrFatal(t)

		rendered := try.To(pod.Render(def, settingsUnderTest())).OrFatal(t)

		work := containerNamed(t, rendered.PodSpec, "work")
		if work["image"] != "registry.example.com/flow/sidecar:v2" {
			t.Errorf("wrong primary image: %v", work["image"])
		}

		logger := containerNamed(t, rendered.PodSpec, "logger")
		if logger["image"] != "registry.example.com/flow/logger:v1" {
			t.Errorf("wrong logger image: %v", logger["image"])
		}

		if rendered.Labels["team"] != "ml" {
			t.Errorf("labels are lost: %v", rendered.Labels)
		}
	})

	t.Run("a plural resource declaration fails the render", func(t *testing.T) {
		def := &tasks.Definition{
			Name:    "broken",
			Command: []string{"run"},
			Resources: tasks.Spec{
				Limits: tasks.Resources{CPU: tasks.QuantityList{"1", "2"}},
			},
		}

		if _, err := pod.Render(def, settingsUnderTest()); err == nil {
			t.Error("error expected")
		}
	})
}
