// Package k8s runs rendered task pods on a cluster, for ad-hoc execution
// outside the orchestration platform.
package k8s

import (
	"context"
	"io"
	"time"

	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	xe "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/utils/names"
)

// PodClient is the subset of k8s.Clientset this SDK needs.
type PodClient interface {
	CreatePod(ctx context.Context, namespace string, pod *kubecore.Pod) (*kubecore.Pod, error)
	GetPod(ctx context.Context, namespace string, name string) (*kubecore.Pod, error)
	DeletePod(ctx context.Context, namespace string, name string) error
	Log(ctx context.Context, namespace string, podname string, container string) (io.ReadCloser, error)
}

// A wrapper for the type k8s.Clientset; because it does not prefer
// method chain-style invocations of that type.
type podClient struct {
	client *k8s.Clientset
}

// type check: podClient implements PodClient
var _ PodClient = &podClient{}

// WrapClientset adapts a clientset into a PodClient.
func WrapClientset(clientset *k8s.Clientset) PodClient {
	return &podClient{client: clientset}
}

// FromKubeconfig builds a PodClient from a kubeconfig file,
// or from in-cluster configuration when path is empty.
func FromKubeconfig(path string) (PodClient, error) {
	var conf *rest.Config
	var err error
	if path == "" {
		conf, err = rest.InClusterConfig()
	} else {
		conf, err = clientcmd.BuildConfigFromFlags("", path)
	}
	if err != nil {
		return nil, xe.Wrap(err)
	}

	clientset, err := k8s.NewForConfig(conf)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return WrapClientset(clientset), nil
}

func (k *podClient) CreatePod(ctx context.Context, namespace string, pod *kubecore.Pod) (*kubecore.Pod, error) {
	return k.client.CoreV1().Pods(namespace).Create(ctx, pod, kubeapimeta.CreateOptions{})
}

func (k *podClient) GetPod(ctx context.Context, namespace string, name string) (*kubecore.Pod, error) {
	return k.client.CoreV1().Pods(namespace).Get(ctx, name, kubeapimeta.GetOptions{})
}

func (k *podClient) DeletePod(ctx context.Context, namespace string, name string) error {
	return k.client.CoreV1().Pods(namespace).Delete(ctx, name, *kubeapimeta.NewDeleteOptions(0))
}

func (k *podClient) Log(ctx context.Context, namespace string, podname string, container string) (io.ReadCloser, error) {
	return k.client.
		CoreV1().
		Pods(namespace).
		GetLogs(podname, &kubecore.PodLogOptions{Container: container, Follow: true}).
		Stream(ctx)
}

// Run creates a pod named after the task (sanitized to a DNS label)
// carrying the given spec, labels and annotations.
func Run(
	ctx context.Context,
	client PodClient,
	namespace string,
	taskName string,
	spec *kubecore.PodSpec,
	labels map[string]string,
	annotations map[string]string,
) (*kubecore.Pod, error) {
	pod := &kubecore.Pod{
		ObjectMeta: kubeapimeta.ObjectMeta{
			Name:        names.Dnsify(taskName),
			Namespace:   namespace,
			Labels:      labels,
			Annotations: annotations,
		},
		Spec: *spec.DeepCopy(),
	}

	created, err := client.CreatePod(ctx, namespace, pod)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return created, nil
}

// WaitTerminated polls the pod until it reaches a terminal phase
// (Succeeded or Failed) and returns that phase.
func WaitTerminated(
	ctx context.Context,
	client PodClient,
	namespace string,
	name string,
	interval time.Duration,
) (kubecore.PodPhase, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		pod, err := client.GetPod(ctx, namespace, name)
		if err != nil {
			return "", xe.Wrap(err)
		}
		switch phase := pod.Status.Phase; phase {
		case kubecore.PodSucceeded, kubecore.PodFailed:
			return phase, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
