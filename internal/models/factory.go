package models

import (
    "fmt"
)

const (
    AlgorithmLinearSVC = "linear_svc"
    AlgorithmBayes     = "bayes"
    AlgorithmKNN       = "knn"
)

type ModelConfig struct {
    Algorithm   string  `yaml:"algorithm"`
    C           float64 `yaml:"c"`
    Tol         float64 `yaml:"tol"`
    MaxIter     int     `yaml:"max_iter"`
    ClassWeight string  `yaml:"class_weight"`
    Seed        int64   `yaml:"seed"`
    Alpha       float64 `yaml:"alpha"`
    K           int     `yaml:"k"`
    SublinearTF bool    `yaml:"sublinear_tf"`
}

func CreateModel(config ModelConfig) (Model, error) {
    if config.ClassWeight == "" {
        config.ClassWeight = ClassWeightBalanced
    }
    if config.ClassWeight != ClassWeightBalanced && config.ClassWeight != ClassWeightNone {
        return nil, fmt.Errorf("unknown class weight: %s", config.ClassWeight)
    }

    switch config.Algorithm {
    case AlgorithmLinearSVC, "":
        if config.C <= 0 {
            config.C = 1.0
        }
        if config.Tol <= 0 {
            config.Tol = 1e-4
        }
        if config.MaxIter <= 0 {
            config.MaxIter = 1000
        }
        return NewLinearSVC(config.C, config.Tol, config.MaxIter, config.ClassWeight, config.Seed), nil

    case AlgorithmBayes:
        if config.Alpha <= 0 {
            config.Alpha = 1.0
        }
        return NewNaiveBayes(config.Alpha, config.ClassWeight == ClassWeightBalanced), nil

    case AlgorithmKNN:
        if config.K <= 0 {
            config.K = 5
        }
        return NewKNN(config.K), nil

    default:
        return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
    }
}

func DefaultConfig(algorithm string) ModelConfig {
    config := ModelConfig{Algorithm: algorithm, ClassWeight: ClassWeightBalanced}

    switch algorithm {
    case AlgorithmLinearSVC:
        config.C = 1.0
        config.Tol = 1e-4
        config.MaxIter = 1000
    case AlgorithmBayes:
        config.Alpha = 1.0
    case AlgorithmKNN:
        config.K = 5
    }

    return config
}
