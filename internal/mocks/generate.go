package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/profile --output domain/profile --outpkg profilemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/account --output domain/account --outpkg accountmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Storage --dir ../domain/media --output domain/media --outpkg mediamock --filename storage_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name "TextModel|ImageModel|VideoModel" --dir ../domain/assistant --output domain/assistant --outpkg assistantmock
